package bootstrap

import (
	"strings"
	"testing"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "studymatch",
		SessionKey:    strings.Repeat("k", 32),
		WSTokenKey:    strings.Repeat("w", 32),
	}
}

func TestValidateConfig_OK(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}
	if err := ValidateConfig(coreCfg, validAppConfig(), zap.NewNop()); err != nil {
		t.Errorf("ValidateConfig failed: %v", err)
	}
}

func TestValidateConfig_BadMongoURI(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}
	appCfg := validAppConfig()
	appCfg.MongoURI = "http://not-a-mongo-uri"

	if err := ValidateConfig(coreCfg, appCfg, zap.NewNop()); err == nil {
		t.Error("expected error for non-mongodb URI")
	}
}

func TestValidateConfig_ShortKeys(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}

	appCfg := validAppConfig()
	appCfg.SessionKey = "short"
	if err := ValidateConfig(coreCfg, appCfg, zap.NewNop()); err == nil {
		t.Error("expected error for short session key")
	}

	appCfg = validAppConfig()
	appCfg.WSTokenKey = "short"
	if err := ValidateConfig(coreCfg, appCfg, zap.NewNop()); err == nil {
		t.Error("expected error for short ws token key")
	}
}

func TestValidateConfig_ProdRequiresGoogleCreds(t *testing.T) {
	appCfg := validAppConfig()

	if err := ValidateConfig(&config.CoreConfig{Env: "prod"}, appCfg, zap.NewNop()); err == nil {
		t.Error("expected error when Google credentials are missing in prod")
	}

	appCfg.GoogleClientID = "id"
	appCfg.GoogleClientSecret = "secret"
	if err := ValidateConfig(&config.CoreConfig{Env: "prod"}, appCfg, zap.NewNop()); err != nil {
		t.Errorf("ValidateConfig failed with credentials set: %v", err)
	}
}
