package objconf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseValidTable() *Table {
	t := NewTable()
	t.Config.CurrentRunlevel = "default"
	o := t.AddObject("svc")
	o.Description = "a service"
	o.StartCommand = "/usr/bin/svc"
	o.Enabled = True
	o.AddRunlevel("default")
	return t
}

func TestCheckIntegrityAcceptsValidTable(t *testing.T) {
	tbl := baseValidTable()
	result, problems := CheckIntegrity(context.Background(), tbl, Reload, nil, nil)
	assert.Equal(t, Success, result)
	assert.Empty(t, problems)
}

func TestCheckIntegrityNoObjectsIsFatal(t *testing.T) {
	tbl := NewTable()
	tbl.Config.CurrentRunlevel = "default"
	result, problems := CheckIntegrity(context.Background(), tbl, Reload, nil, nil)
	assert.Equal(t, Failure, result)
	assert.Len(t, problems, 1)
}

func TestCheckIntegrityMissingDescriptionWarns(t *testing.T) {
	tbl := baseValidTable()
	tbl.LookupObjectByID("svc").Description = ""
	result, _ := CheckIntegrity(context.Background(), tbl, Reload, nil, nil)
	assert.Equal(t, Warning, result)
	assert.Equal(t, "[missing description]", tbl.LookupObjectByID("svc").Description)
}

func TestCheckIntegrityMissingStartCommandDisablesObject(t *testing.T) {
	tbl := baseValidTable()
	tbl.LookupObjectByID("svc").StartCommand = ""
	result, _ := CheckIntegrity(context.Background(), tbl, Reload, nil, nil)
	assert.Equal(t, Warning, result)
	assert.False(t, tbl.LookupObjectByID("svc").Enabled.Bool())
}

func TestCheckIntegrityMissingRunlevelsIsFatal(t *testing.T) {
	tbl := baseValidTable()
	o := tbl.LookupObjectByID("svc")
	o.RemoveRunlevel("default")
	result, _ := CheckIntegrity(context.Background(), tbl, Reload, nil, nil)
	assert.Equal(t, Failure, result)
}

func TestCheckIntegrityUnsetEnabledIsFatal(t *testing.T) {
	tbl := baseValidTable()
	tbl.LookupObjectByID("svc").Enabled = Unset
	result, _ := CheckIntegrity(context.Background(), tbl, Reload, nil, nil)
	assert.Equal(t, Failure, result)
}

func TestCheckIntegrityStopPIDWithHaltOnlyWarnsAndDisables(t *testing.T) {
	tbl := baseValidTable()
	// A regular object keeps "default" a valid runlevel once svc is halt-only.
	other := tbl.AddObject("other")
	other.Description = "another service"
	other.StartCommand = "/bin/true"
	other.Enabled = True
	other.AddRunlevel("default")
	o := tbl.LookupObjectByID("svc")
	o.StopMode = StopPID
	o.Options.HaltOnly = true
	result, _ := CheckIntegrity(context.Background(), tbl, Reload, nil, nil)
	assert.Equal(t, Warning, result)
	assert.False(t, o.Enabled.Bool())
}

func TestCheckIntegrityDuplicateIDsAreFatal(t *testing.T) {
	tbl := baseValidTable()
	dup := tbl.AddObject("svc")
	dup.Description = "duplicate"
	dup.StartCommand = "/bin/true"
	dup.Enabled = True
	dup.AddRunlevel("default")

	result, problems := CheckIntegrity(context.Background(), tbl, Reload, nil, nil)
	assert.Equal(t, Failure, result)
	found := false
	for _, p := range problems {
		if p.Kind == Fatal {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckIntegrityDuplicateIDsFromParsedConfigAreFatal(t *testing.T) {
	raw := `ObjectID svc
ObjectDescription first
ObjectEnabled true
ObjectStartCommand /bin/true
ObjectRunlevels default

ObjectID svc
ObjectDescription second
ObjectEnabled true
ObjectStartCommand /bin/false
ObjectRunlevels default
`
	tbl, problems := ParseConfig(raw)
	assert.Empty(t, problems)
	tbl.Config.CurrentRunlevel = "default"

	result, _ := CheckIntegrity(context.Background(), tbl, Reload, nil, nil)
	assert.Equal(t, Failure, result)
}

func TestCheckIntegrityReloadModeFailsOutrightOnBadRunlevel(t *testing.T) {
	tbl := baseValidTable()
	tbl.Config.CurrentRunlevel = "doesnotexist"
	result, _ := CheckIntegrity(context.Background(), tbl, Reload, nil, nil)
	assert.Equal(t, Failure, result)
}

func TestCheckIntegrityBootModePromptsOnBadRunlevel(t *testing.T) {
	tbl := baseValidTable()
	tbl.Config.CurrentRunlevel = "doesnotexist"

	prompted := false
	prompt := func(ctx context.Context) (string, bool) {
		prompted = true
		return "default", true
	}

	result, _ := CheckIntegrity(context.Background(), tbl, Boot, prompt, nil)
	assert.True(t, prompted)
	assert.Equal(t, Success, result)
	assert.Equal(t, "default", tbl.Config.CurrentRunlevel)
}

func TestCheckIntegrityBootModeEmptyPromptRunsEmergencyShell(t *testing.T) {
	tbl := baseValidTable()
	tbl.Config.CurrentRunlevel = "doesnotexist"

	shellRan := false
	prompt := func(ctx context.Context) (string, bool) {
		return "", false
	}
	emergencyShell := func() {
		shellRan = true
	}

	result, _ := CheckIntegrity(context.Background(), tbl, Boot, prompt, emergencyShell)
	assert.Equal(t, Failure, result)
	assert.True(t, shellRan)
}
