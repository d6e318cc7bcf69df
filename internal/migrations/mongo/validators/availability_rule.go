package validators

import "go.mongodb.org/mongo-driver/bson"

var AvailabilityRuleValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"start_time",
			"end_time",
			"timezone",
			"is_active",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"event_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"organization_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"day_of_week": bson.M{
				"bsonType": "string",
				"enum": []string{
					"monday",
					"tuesday",
					"wednesday",
					"thursday",
					"friday",
					"saturday",
					"sunday",
				},
			},

			"specific_date": bson.M{
				"bsonType": "string",
				"pattern":  "^\\d{4}-\\d{2}-\\d{2}$",
			},

			"start_time": bson.M{
				"bsonType": "string",
				"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
			},

			"end_time": bson.M{
				"bsonType": "string",
				"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
			},

			"timezone": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},
		},
	},
}
