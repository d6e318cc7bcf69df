package main

import (
	availabilityhandler "github.com/samuelpalacioss/cue/internal/availability/handler"
	availabilityrepo "github.com/samuelpalacioss/cue/internal/availability/repository"
	availabilityservice "github.com/samuelpalacioss/cue/internal/availability/service"
	availabilityvalidator "github.com/samuelpalacioss/cue/internal/availability/validator"
	calendarhandler "github.com/samuelpalacioss/cue/internal/calendar/handler"
	calendarrepo "github.com/samuelpalacioss/cue/internal/calendar/repository"
	calendarservice "github.com/samuelpalacioss/cue/internal/calendar/service"
	calendarvalidator "github.com/samuelpalacioss/cue/internal/calendar/validator"
	"github.com/samuelpalacioss/cue/pkg/app"
	"github.com/samuelpalacioss/cue/pkg/config"
	"github.com/samuelpalacioss/cue/pkg/kafka"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting availability service")

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		initAvailability(cfg),
		initCalendar(cfg),
	)
	serverApp.Run()
}

func initAvailability(cfg *config.Config) *availabilityhandler.AvailabilityHandler {
	repo := availabilityrepo.NewMongoAvailabilityRepository(cfg)
	svc := availabilityservice.NewAvailabilityService(repo, newAnomalyReporter(cfg), cfg)
	qv := availabilityvalidator.NewQueryValidator(cfg.Log)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return availabilityhandler.NewAvailabilityHandler(svc, qv, cfg)
}

func initCalendar(cfg *config.Config) *calendarhandler.CalendarHandler {
	repo := calendarrepo.NewMongoCalendarRepository(cfg)
	svc := calendarservice.NewCalendarService(repo, cfg)
	qv := calendarvalidator.NewQueryValidator(cfg.Log)

	cfg.Log.Info("Calendar service initialized", "database", cfg.MongoDatabaseName)
	return calendarhandler.NewCalendarHandler(svc, qv, cfg)
}

// newAnomalyReporter publishes rule overlap anomalies to Kafka when brokers
// are configured and falls back to log-only reporting otherwise.
func newAnomalyReporter(cfg *config.Config) availabilityservice.AnomalyReporter {
	if len(cfg.KafkaBrokers) == 0 {
		return availabilityservice.NewLogReporter(cfg.Log)
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaAnomalyTopic)
	if err != nil {
		cfg.Log.Error("Failed to create Kafka producer, falling back to log reporter", "error", err)
		return availabilityservice.NewLogReporter(cfg.Log)
	}

	cfg.Log.Info("Kafka anomaly reporter enabled", "topic", cfg.KafkaAnomalyTopic)
	return availabilityservice.NewKafkaReporter(producer, cfg.Log)
}
