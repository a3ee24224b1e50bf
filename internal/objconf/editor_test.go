package objconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTempConf(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "epoch.conf")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

const editFixture = `ObjectID networking
ObjectDescription Network bring-up
ObjectEnabled true
ObjectStartCommand /sbin/ifup -a
ObjectStartPriority 1

ObjectID sshd
ObjectDescription OpenSSH daemon
# ObjectDescription this is commented out and must not match
ObjectEnabled true
ObjectStartCommand /usr/sbin/sshd -D
ObjectStartPriority 2
`

func TestEditAttributeReplacesValuePreservingSeparator(t *testing.T) {
	path := writeTempConf(t, editFixture)

	result, err := EditAttribute(path, "networking", "ObjectStartPriority", "7")
	assert.NoError(t, err)
	assert.Equal(t, Success, result)

	out, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(out), "ObjectStartPriority 7")
	assert.NotContains(t, string(out), "ObjectStartPriority 1\n")
}

func TestEditAttributeScopesToNamedObjectOnly(t *testing.T) {
	path := writeTempConf(t, editFixture)

	_, err := EditAttribute(path, "networking", "ObjectDescription", "Renamed")
	assert.NoError(t, err)

	out, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(out), "ObjectID networking\nObjectDescription Renamed\n")
	assert.Contains(t, string(out), "ObjectDescription OpenSSH daemon")
}

func TestEditAttributeSkipsCommentedOccurrence(t *testing.T) {
	path := writeTempConf(t, editFixture)

	_, err := EditAttribute(path, "sshd", "ObjectDescription", "Renamed")
	assert.NoError(t, err)

	out, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(out), "ObjectDescription Renamed")
	assert.Contains(t, string(out), "# ObjectDescription this is commented out and must not match")
}

func TestEditAttributeIdempotentWriteBack(t *testing.T) {
	path := writeTempConf(t, editFixture)

	before, err := os.ReadFile(path)
	assert.NoError(t, err)

	_, err = EditAttribute(path, "networking", "ObjectStartPriority", "1")
	assert.NoError(t, err)

	after, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestEditAttributeUnknownObjectFails(t *testing.T) {
	path := writeTempConf(t, editFixture)

	result, err := EditAttribute(path, "nonexistent", "ObjectDescription", "x")
	assert.Error(t, err)
	assert.Equal(t, Failure, result)
}

func TestEditAttributeUnknownAttributeFails(t *testing.T) {
	path := writeTempConf(t, editFixture)

	result, err := EditAttribute(path, "networking", "ObjectNotARealAttribute", "x")
	assert.Error(t, err)
	assert.Equal(t, Failure, result)
}
