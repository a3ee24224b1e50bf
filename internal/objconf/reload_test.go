package objconf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

const reloadBaseConf = `
DefaultRunlevel default
DisableCAD true
EnableLogging true
AlignStatusReports true

ObjectID networking
ObjectDescription Network bring-up
ObjectEnabled true
ObjectStartCommand /sbin/ifup -a
ObjectStartPriority 1
ObjectRunlevels default
`

func TestReloadCommitCarriesOverRuntimeState(t *testing.T) {
	table, problems := ParseConfig(reloadBaseConf)
	assert.Empty(t, problems)
	CheckIntegrity(context.Background(), table, Boot, nil, nil)

	net := table.LookupObjectByID("networking")
	net.Started = true
	net.PID = 4242

	// The new file omits DefaultRunlevel entirely, same as a reload file
	// that simply never repeats it — the running runlevel must carry over
	// unchanged, not fail integrity for lacking one.
	const updated = `
DisableCAD false
EnableLogging false
AlignStatusReports false

ObjectID networking
ObjectDescription Network bring-up, now with a longer description
ObjectEnabled true
ObjectStartCommand /sbin/ifup -a
ObjectStartPriority 1
ObjectRunlevels default
`
	result := ReloadConfig(context.Background(), table, updated)
	assert.NotEqual(t, Failure, result.Result)

	got := table.LookupObjectByID("networking")
	if assert.NotNil(t, got) {
		assert.True(t, got.Started)
		assert.Equal(t, 4242, got.PID)
		assert.Equal(t, "Network bring-up, now with a longer description", got.Description)
	}

	// the three preserved globals survive even though the new file tried
	// to flip them.
	assert.True(t, table.Config.DisableCAD)
	assert.True(t, table.Config.EnableLogging)
	assert.True(t, table.Config.AlignStatusReports)

	// DefaultRunlevel was omitted from the new file entirely; the running
	// runlevel must still be "default", not "".
	assert.Equal(t, "default", table.Config.CurrentRunlevel)
}

func TestReloadIgnoresDefaultRunlevelWhenAlreadyRunning(t *testing.T) {
	table, problems := ParseConfig(reloadBaseConf)
	assert.Empty(t, problems)
	CheckIntegrity(context.Background(), table, Boot, nil, nil)

	// The new file names a different (but otherwise valid) DefaultRunlevel;
	// the live runlevel must win, matching CurRunlevel[0] != 0 short-
	// circuiting DefaultRunlevel on the C side (config.c:548).
	const updated = `
DefaultRunlevel multi
RunlevelInherits multi default

ObjectID networking
ObjectDescription Network bring-up
ObjectEnabled true
ObjectStartCommand /sbin/ifup -a
ObjectStartPriority 1
ObjectRunlevels default
`
	result := ReloadConfig(context.Background(), table, updated)
	assert.NotEqual(t, Failure, result.Result)
	assert.Equal(t, "default", table.Config.CurrentRunlevel)
}

func TestReloadRollsBackOnFailure(t *testing.T) {
	table, problems := ParseConfig(reloadBaseConf)
	assert.Empty(t, problems)
	CheckIntegrity(context.Background(), table, Boot, nil, nil)

	before := table.clone()

	const broken = `
DefaultRunlevel nosuchlevel

ObjectID networking
ObjectDescription Network bring-up
ObjectEnabled true
ObjectStartCommand /sbin/ifup -a
ObjectStartPriority 1
ObjectRunlevels nosuchlevel
`
	result := ReloadConfig(context.Background(), table, broken)
	assert.Equal(t, Failure, result.Result)

	assert.Equal(t, before.Config, table.Config)
	assert.Len(t, table.Objects(), len(before.Objects()))
	net := table.LookupObjectByID("networking")
	if assert.NotNil(t, net) {
		assert.Equal(t, "Network bring-up", net.Description)
	}
}
