package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexonufrak/dashboard-api/internal/appconf"
)

func TestBlankKeyIsInvalid(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"key"},
		},
	}
	assert.True(t, app.IsInvalidAPIKey(""))
}

func TestConfiguredKeyIsValid(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"key"},
		},
	}
	assert.False(t, app.IsInvalidAPIKey("key"))
	assert.True(t, app.IsInvalidAPIKey("other"))
}

func TestAdminKeyIsSeparateFromAPIKeys(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys:   []string{"key"},
			AdminKeys: []string{"admin-key"},
		},
	}
	assert.False(t, app.IsInvalidAdminKey("admin-key"))
	assert.True(t, app.IsInvalidAdminKey("key"))
	assert.True(t, app.IsInvalidAdminKey(""))
}
