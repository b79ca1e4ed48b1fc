package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
	"github.com/capitolwatch/capitolwatch-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	log.Info("Loading environment variables...")
	databaseURL := utils.GetEnv("DATABASE_URL", "", log)
	if databaseURL == "" {
		postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
		postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
		postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
		postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		postgresName := utils.GetEnv("POSTGRES_NAME", "congress", log)
		databaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)
	}
	poolMin := utils.GetEnvAsInt("DB_POOL_MIN", 1, log)
	poolMax := utils.GetEnvAsInt("DB_POOL_MAX", 5, log)

	log.Info("Connecting to Postgres...")
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		log.Error("Failed to open Postgres pool", "error", err)
		return nil, fmt.Errorf("Failed to open Postgres pool: %w", err)
	}
	sqlDB.SetMaxIdleConns(poolMin)
	sqlDB.SetMaxOpenConns(poolMax)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
	}
	log.Info("uuid-ossp extension enabled")

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.Legislator{},
		&types.ServiceHistory{},
		&types.CommitteeAssignment{},
		&types.LeadershipRole{},
		&types.BillSponsorship{},
		&types.CampaignFinance{},
		&types.VoteSession{},
		&types.VoteRecord{},
		&types.FECCandidate{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	fks := []struct {
		table      string
		constraint string
		column     string
		refTable   string
	}{
		{"service_history", "fk_service_history_legislator_id", "legislator_id", "legislators"},
		{"committee_assignments", "fk_committee_assignments_legislator_id", "legislator_id", "legislators"},
		{"leadership_roles", "fk_leadership_roles_legislator_id", "legislator_id", "legislators"},
		{"sponsored_bills", "fk_sponsored_bills_legislator_id", "legislator_id", "legislators"},
		{"campaign_finance", "fk_campaign_finance_legislator_id", "legislator_id", "legislators"},
		{"vote_records", "fk_vote_records_legislator_id", "legislator_id", "legislators"},
		{"vote_records", "fk_vote_records_vote_session_id", "vote_session_id", "vote_sessions"},
	}
	for _, fk := range fks {
		stmt := fmt.Sprintf(`
			ALTER TABLE %q
			DROP CONSTRAINT IF EXISTS %q;
			ALTER TABLE %q
			ADD CONSTRAINT %q
			FOREIGN KEY (%q)
			REFERENCES %q("id")
			ON DELETE CASCADE
		`, fk.table, fk.constraint, fk.table, fk.constraint, fk.column, fk.refTable)
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("Failed to add %s: %w", fk.constraint, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
