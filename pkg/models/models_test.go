package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Decode Tests
// =============================================================================

func TestDecodeCreateDeploymentOptions_YAML(t *testing.T) {
	doc := `
name: local1
image: mongodb/mongodb-atlas-local
mongodbVersion: "8.0"
waitUntilHealthy: true
waitUntilHealthyTimeout: 60
loadSampleData: false
doNotTrack: true
creationSource:
  type: MCPServer
  source: MCPSERVER
mongodbPortBinding:
  type: Specific
  ip: 192.0.2.0
  port: 27017
`
	opts, err := DecodeCreateDeploymentOptions(strings.NewReader(doc))
	require.NoError(t, err)

	require.NotNil(t, opts.Name)
	assert.Equal(t, "local1", *opts.Name)
	assert.Equal(t, "mongodb/mongodb-atlas-local", *opts.Image)
	assert.Equal(t, "8.0", *opts.MongoDBVersion)
	assert.True(t, *opts.WaitUntilHealthy)
	assert.Equal(t, uint32(60), *opts.WaitUntilHealthyTimeout)
	assert.False(t, *opts.LoadSampleData)
	assert.True(t, *opts.DoNotTrack)
	assert.Equal(t, &CreationSource{Type: CreationSourceTypeMCPServer, Source: "MCPSERVER"}, opts.CreationSource)
	assert.Equal(t, &PortBinding{Type: BindingTypeSpecific, IP: "192.0.2.0", Port: 27017}, opts.MongoDBPortBinding)

	assert.Nil(t, opts.SkipPullImage)
	assert.Nil(t, opts.VoyageAPIKey)
	assert.Nil(t, opts.TelemetryBaseURL)
}

func TestDecodeCreateDeploymentOptions_JSON(t *testing.T) {
	doc := `{"name": "from-json", "mongodbVersion": "latest", "mongodbPortBinding": {"type": "Loopback", "ip": "127.0.0.1", "port": 27018}}`

	opts, err := DecodeCreateDeploymentOptions(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "from-json", *opts.Name)
	assert.Equal(t, "latest", *opts.MongoDBVersion)
	assert.Equal(t, uint16(27018), opts.MongoDBPortBinding.Port)
}

func TestDecodeCreateDeploymentOptions_Empty(t *testing.T) {
	opts, err := DecodeCreateDeploymentOptions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, CreateDeploymentOptions{}, opts)
}

func TestDecodeCreateDeploymentOptions_UnknownField(t *testing.T) {
	_, err := DecodeCreateDeploymentOptions(strings.NewReader("name: x\nmongoVersion: 8.0.0\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Contains(t, err.Error(), "mongoVersion")
}

func TestDecodeCreateDeploymentOptions_UnknownNestedField(t *testing.T) {
	doc := "mongodbPortBinding:\n  type: Loopback\n  address: 127.0.0.1\n"
	_, err := DecodeCreateDeploymentOptions(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestDecodeCreateDeploymentOptions_WrongType(t *testing.T) {
	_, err := DecodeCreateDeploymentOptions(strings.NewReader("waitUntilHealthyTimeout: soon\n"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnknownField))
}

func TestDecodeCreateDeploymentOptions_PortOutOfRange(t *testing.T) {
	doc := "mongodbPortBinding:\n  type: Loopback\n  port: 70000\n"
	_, err := DecodeCreateDeploymentOptions(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestDecodeCreateDeploymentOptions_Syntax(t *testing.T) {
	_, err := DecodeCreateDeploymentOptions(strings.NewReader("name: [unterminated\n"))
	assert.Error(t, err)
}

// =============================================================================
// JSON Shape Tests
// =============================================================================

func TestDeployment_JSONFieldNames(t *testing.T) {
	name := "local1"
	data, err := json.Marshal(Deployment{
		ContainerID:    "abc",
		Name:           &name,
		State:          StateRunning,
		PortBindings:   &PortBinding{Type: BindingTypeLoopback, IP: LoopbackAddress, Port: 27017},
		MongoDBType:    MongoDBTypeCommunity,
		MongoDBVersion: "8.0.0",
		CreationSource: &CreationSource{Type: CreationSourceTypeAtlasCLI, Source: "ATLASCLI"},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"containerId": "abc",
		"name": "local1",
		"state": "Running",
		"portBindings": {"type": "Loopback", "ip": "127.0.0.1", "port": 27017},
		"mongodbType": "Community",
		"mongodbVersion": "8.0.0",
		"creationSource": {"type": "AtlasCLI", "source": "ATLASCLI"}
	}`, string(data))
}

// =============================================================================
// Enum Tests
// =============================================================================

func TestBindingType_Valid(t *testing.T) {
	assert.True(t, BindingTypeLoopback.Valid())
	assert.True(t, BindingTypeAnyInterface.Valid())
	assert.True(t, BindingTypeSpecific.Valid())
	assert.False(t, BindingType("loopback").Valid())
	assert.False(t, BindingType("").Valid())
}

func TestCreationSourceType_Known(t *testing.T) {
	assert.True(t, CreationSourceTypeAtlasCLI.Known())
	assert.True(t, CreationSourceTypeContainer.Known())
	assert.True(t, CreationSourceTypeMCPServer.Known())
	assert.False(t, CreationSourceTypeOther.Known())
	assert.False(t, CreationSourceType("Future").Known())
}

// =============================================================================
// FieldError Tests
// =============================================================================

func TestFieldError(t *testing.T) {
	err := NewFieldError("mongodbVersion", "garbage", "not a semantic version", ErrMalformedVersion)
	assert.Equal(t, `mongodbVersion "garbage": not a semantic version`, err.Error())
	assert.ErrorIs(t, err, ErrMalformedVersion)

	err = NewFieldError("mongodbPortBinding", "", "missing", ErrInvalidEnum)
	assert.Equal(t, "mongodbPortBinding: missing", err.Error())

	err = NewFieldError("", "", "field foo not found", ErrUnknownField)
	assert.Equal(t, "field foo not found", err.Error())
}
