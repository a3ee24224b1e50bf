package objconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleConf = `
DisableCAD true
DefaultRunlevel default
BootBannerText Welcome to Epoch
RunlevelInherits default multi

ObjectID networking
ObjectDescription Network bring-up
ObjectEnabled true
ObjectStartCommand /sbin/ifup -a
ObjectStopCommand /sbin/ifdown -a
ObjectStartPriority 1
ObjectStopPriority 1
ObjectRunlevels default multi

ObjectID sshd
ObjectDescription OpenSSH daemon
ObjectEnabled true
ObjectOptions SERVICE AUTORESTART
ObjectStartCommand /usr/sbin/sshd -D
ObjectStopCommand PID
ObjectStartPriority 2
ObjectStopPriority 2
ObjectRunlevels multi
`

func TestParseConfigBasic(t *testing.T) {
	table, problems := ParseConfig(sampleConf)

	assert.Empty(t, problems)
	assert.Equal(t, "default", table.Config.CurrentRunlevel)
	assert.True(t, table.Config.DisableCAD)
	assert.Equal(t, "Welcome to Epoch", table.Config.BootBanner.Text)
	assert.True(t, table.Config.BootBanner.Show)
	assert.True(t, table.InheritsRunlevel("default", "multi"))

	net := table.LookupObjectByID("networking")
	if assert.NotNil(t, net) {
		assert.Equal(t, "Network bring-up", net.Description)
		assert.True(t, net.Enabled.Bool())
		assert.Equal(t, 1, net.StartPriority)
		assert.True(t, net.HasRunlevel("default"))
		assert.True(t, net.HasRunlevel("multi"))
	}

	sshd := table.LookupObjectByID("sshd")
	if assert.NotNil(t, sshd) {
		assert.True(t, sshd.Options.IsService)
		assert.True(t, sshd.Options.AutoRestart)
		assert.Equal(t, StopPID, sshd.StopMode)
	}
}

func TestParseConfigBlockComments(t *testing.T) {
	raw := `>!> this whole
stanza is a comment
ObjectID ignored
<!< BootBannerText back to business
DefaultRunlevel default
`
	table, problems := ParseConfig(raw)
	assert.Empty(t, problems)
	assert.Nil(t, table.LookupObjectByID("ignored"))
	assert.Equal(t, "default", table.Config.CurrentRunlevel)
}

func TestParseConfigStrayBlockTerminatorWarns(t *testing.T) {
	raw := "<!< stray\nDefaultRunlevel default\n"
	_, problems := ParseConfig(raw)
	if assert.Len(t, problems, 1) {
		assert.Equal(t, Notice, problems[0].Kind)
	}
}

func TestParseConfigUnterminatedBlockWarnsAtEOF(t *testing.T) {
	raw := ">!> never closed\nDefaultRunlevel default\n"
	_, problems := ParseConfig(raw)
	if assert.Len(t, problems, 1) {
		assert.Equal(t, Notice, problems[0].Kind)
	}
}

func TestParseConfigUnknownAttributeWarns(t *testing.T) {
	raw := "ThisIsNotARealAttribute true\n"
	_, problems := ParseConfig(raw)
	if assert.Len(t, problems, 1) {
		assert.Equal(t, UnknownAttribute, problems[0].Kind)
		assert.Equal(t, Warning, problems[0].Kind.Severity())
	}
}

func TestObjectAttributeBeforeObjectIDWarns(t *testing.T) {
	raw := "ObjectEnabled true\n"
	_, problems := ParseConfig(raw)
	if assert.Len(t, problems, 1) {
		assert.Equal(t, OrderBefore, problems[0].Kind)
	}
}

func TestDefinePriorityAfterObjectIDWarns(t *testing.T) {
	raw := "ObjectID foo\nDefinePriority late 5\n"
	_, problems := ParseConfig(raw)
	if assert.Len(t, problems, 1) {
		assert.Equal(t, OrderAfter, problems[0].Kind)
	}
}

func TestDefinePriorityAliasResolvesInPriority(t *testing.T) {
	raw := `DefinePriority earlyboot 3
ObjectID foo
ObjectStartPriority earlyboot
`
	table, problems := ParseConfig(raw)
	assert.Empty(t, problems)
	foo := table.LookupObjectByID("foo")
	if assert.NotNil(t, foo) {
		assert.Equal(t, 3, foo.StartPriority)
	}
}

func TestMountVirtualTokens(t *testing.T) {
	raw := "MountVirtual procfs sysfs+ devpts\n"
	table, problems := ParseConfig(raw)
	assert.Empty(t, problems)
	assert.Equal(t, MountOnce, table.Config.VirtualMounts.Procfs)
	assert.Equal(t, MountRemount, table.Config.VirtualMounts.Sysfs)
	assert.Equal(t, MountOnce, table.Config.VirtualMounts.DevPts)
	assert.Equal(t, MountSkip, table.Config.VirtualMounts.Devfs)
}

func TestNowaitEmulationAppendsAmpersandOnce(t *testing.T) {
	raw := `ObjectID bg
ObjectOptions NOWAIT
ObjectStartCommand /usr/bin/daemonize
`
	table, problems := ParseConfig(raw)
	assert.Len(t, problems, 1) // the deprecation notice
	bg := table.LookupObjectByID("bg")
	if assert.NotNil(t, bg) {
		assert.Equal(t, "/usr/bin/daemonize&", bg.StartCommand)
	}
}

func TestDuplicateObjectIDProducesTwoObjects(t *testing.T) {
	raw := `ObjectID foo
ObjectDescription first
ObjectEnabled true
ObjectStartCommand /bin/true
ObjectStartPriority 1
ObjectRunlevels default

ObjectID foo
ObjectDescription second
ObjectEnabled true
ObjectStartCommand /bin/false
ObjectStartPriority 2
ObjectRunlevels default
`
	table, problems := ParseConfig(raw)
	assert.Empty(t, problems)

	count := 0
	for _, o := range table.Objects() {
		if o.ID == "foo" {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestRunlevelInheritsAfterObjectIDWarnsAndIsDropped(t *testing.T) {
	raw := `ObjectID foo
RunlevelInherits default multi
`
	table, problems := ParseConfig(raw)
	if assert.Len(t, problems, 1) {
		assert.Equal(t, OrderAfter, problems[0].Kind)
	}
	assert.False(t, table.InheritsRunlevel("default", "multi"))
}

func TestSighupMapsToSigkillBug(t *testing.T) {
	raw := `ObjectID foo
ObjectOptions TERMSIGNAL=SIGHUP
`
	table, problems := ParseConfig(raw)
	assert.Empty(t, problems)
	foo := table.LookupObjectByID("foo")
	if assert.NotNil(t, foo) {
		want, _ := namedSignal("SIGKILL")
		assert.Equal(t, want, foo.TermSignal)
	}
}
