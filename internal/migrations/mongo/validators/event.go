package validators

import "go.mongodb.org/mongo-driver/bson"

var EventValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"username",
			"url_slug",
			"title",
			"user_id",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"username": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"url_slug": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
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

			"meeting_type": bson.M{
				"bsonType": "string",
				"enum":     []string{"google_meet", "zoom", "phone", "in_person"},
			},

			"requires_confirmation": bson.M{
				"bsonType": "bool",
			},
		},
	},
}

var EventOptionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"event_id",
			"duration_minutes",
			"capacity",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"event_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"duration_minutes": bson.M{
				"bsonType": "int",
				"minimum":  5,
				"maximum":  480,
			},

			"capacity": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  200,
			},

			"is_default": bson.M{
				"bsonType": "bool",
			},
		},
	},
}
