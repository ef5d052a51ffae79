package database

import (
	"context"
	"path/filepath"
	"testing"

	"blogpessoal/internal/config"
	"blogpessoal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:          "test",
		DBDriver:     DriverSQLite,
		DBSQLitePath: filepath.Join(t.TempDir(), "blog.db"),
		DBSchemaMode: SchemaModeHybrid,
	}
}

func TestConfigurePool(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DBMaxOpenConns = 10
	cfg.DBMaxIdleConns = 5
	cfg.DBConnMaxLifetimeMinutes = 15

	dialector, err := Dialector(cfg)
	require.NoError(t, err)
	db, err := ConnectWithDialector(dialector, cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestDialector_UnsupportedDriver(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: "mysql"})
	assert.Error(t, err)
}

func TestConnect_SQLiteAutoMigratesAndCascades(t *testing.T) {
	cfg := sqliteConfig(t)
	db, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(); DB = nil })

	for _, table := range []string{"tb_usuarios", "tb_temas", "tb_postagens"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	tema := models.Tema{Descricao: "Java"}
	require.NoError(t, db.Create(&tema).Error)
	post := models.Postagem{Titulo: "Olá", Texto: "Primeiro post", TemaID: tema.ID}
	require.NoError(t, db.Create(&post).Error)
	assert.False(t, post.Data.IsZero())

	require.NoError(t, db.Delete(&models.Tema{}, tema.ID).Error)

	var count int64
	require.NoError(t, db.Model(&models.Postagem{}).Where("tema_id = ?", tema.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		runSQL  bool
		runAuto bool
		wantErr bool
	}{
		{name: "hybrid dev", cfg: config.Config{Env: "development", DBSchemaMode: "hybrid"}, runSQL: true, runAuto: true},
		{name: "hybrid prod", cfg: config.Config{Env: "production", DBSchemaMode: "hybrid"}, runSQL: true},
		{name: "sql", cfg: config.Config{Env: "development", DBSchemaMode: "sql"}, runSQL: true},
		{name: "auto prod refused", cfg: config.Config{Env: "production", DBSchemaMode: "auto"}, wantErr: true},
		{name: "auto prod allowed", cfg: config.Config{Env: "production", DBSchemaMode: "auto", DBAutoMigrateAllowDestructive: true}, runAuto: true},
		{name: "sqlite forces auto", cfg: config.Config{Env: "production", DBDriver: "sqlite", DBSchemaMode: "sql"}, runAuto: true},
		{name: "unknown mode", cfg: config.Config{DBSchemaMode: "magic"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runSQL, runAuto, err := schemaPolicy(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.runSQL, runSQL)
			assert.Equal(t, tt.runAuto, runAuto)
		})
	}
}
