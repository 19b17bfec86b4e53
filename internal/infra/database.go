package infra

import (
	"fmt"

	"github.com/45061/Hotelregistryapp/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and migrates the
// schema. Unique-constraint violations are translated to gorm.ErrDuplicatedKey.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates every table, then applies the patches
// AutoMigrate cannot express. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Caja{},
		&model.Pago{},
		&model.Retiro{},
		&model.Habitacion{},
		&model.Viajero{},
		&model.Acompanante{},
		&model.MedioPago{},
		&model.TransaccionCaja{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// handle on its own. Each statement uses IF NOT EXISTS semantics so re-running
// on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// emails are matched case-insensitively on login
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_usuarios_email_lower ON usuarios (LOWER(email))`,
		// ledger amounts are never negative
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_pagos_monto') THEN
		    ALTER TABLE pagos ADD CONSTRAINT chk_pagos_monto CHECK (monto >= 0);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_retiros_monto') THEN
		    ALTER TABLE retiros ADD CONSTRAINT chk_retiros_monto CHECK (monto >= 0);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_transaccion_cajas_monto') THEN
		    ALTER TABLE transaccion_cajas ADD CONSTRAINT chk_transaccion_cajas_monto CHECK (monto >= 0);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_transaccion_cajas_tipo') THEN
		    ALTER TABLE transaccion_cajas ADD CONSTRAINT chk_transaccion_cajas_tipo CHECK (tipo IN ('Ingreso', 'Salida'));
		  END IF;
		END $$`,
		// cycle queries: entries of one box after its last opening
		`CREATE INDEX IF NOT EXISTS idx_pagos_caja_registrado ON pagos (caja_id, registrado_en)`,
		`CREATE INDEX IF NOT EXISTS idx_retiros_caja_registrado ON retiros (caja_id, registrado_en)`,
		// a user's transaction log, newest first
		`CREATE INDEX IF NOT EXISTS idx_transaccion_cajas_usuario_fecha ON transaccion_cajas (usuario_id, fecha_hora)`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
