package options

import (
	"net/netip"
	"testing"
	"time"

	"github.com/artpar/atlaslocal/pkg/engine"
	"github.com/artpar/atlaslocal/pkg/models"
	"github.com/blang/semver/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// fullRequest sets every request field.
func fullRequest() models.CreateDeploymentOptions {
	return models.CreateDeploymentOptions{
		Name:                    ptr("test_deployment"),
		Image:                   ptr("mongodb/mongodb-atlas-local"),
		SkipPullImage:           ptr(false),
		MongoDBVersion:          ptr("8.0.0"),
		WaitUntilHealthy:        ptr(true),
		WaitUntilHealthyTimeout: ptr(uint32(30)),
		CreationSource: &models.CreationSource{
			Type:   models.CreationSourceTypeMCPServer,
			Source: "MCPSERVER",
		},
		LocalSeedLocation:             ptr("/host/seed-data"),
		LoadSampleData:                ptr(true),
		MongoDBInitDBDatabase:         ptr("testdb"),
		MongoDBInitDBRootPasswordFile: ptr("/run/secrets/password"),
		MongoDBInitDBRootPassword:     ptr("password123"),
		MongoDBInitDBRootUsernameFile: ptr("/run/secrets/username"),
		MongoDBInitDBRootUsername:     ptr("admin"),
		VoyageAPIKey:                  ptr("voyage_api_key"),
		MongotLogFile:                 ptr("/tmp/mongot.log"),
		RunnerLogFile:                 ptr("/tmp/runner.log"),
		DoNotTrack:                    ptr(false),
		TelemetryBaseURL:              ptr("https://telemetry.example.com"),
		MongoDBPortBinding: &models.PortBinding{
			Type: models.BindingTypeLoopback,
			IP:   "127.0.0.1",
			Port: 27017,
		},
	}
}

// =============================================================================
// Assemble Tests
// =============================================================================

func TestAssemble_AllFields(t *testing.T) {
	cmd, err := Assemble(fullRequest())
	require.NoError(t, err)
	require.NotNil(t, cmd)

	assert.Equal(t, ptr("test_deployment"), cmd.Name)
	assert.Equal(t, ptr("mongodb/mongodb-atlas-local"), cmd.Image)
	assert.Equal(t, ptr(false), cmd.SkipPullImage)
	assert.Equal(t, engine.ExactVersion(semver.Version{Major: 8, Minor: 0, Patch: 0}), cmd.MongoDBVersion)
	assert.Equal(t, ptr(true), cmd.WaitUntilHealthy)
	assert.Equal(t, ptr(30*time.Second), cmd.WaitUntilHealthyTimeout)
	assert.Equal(t, engine.MCPServerSource{}, cmd.CreationSource)
	assert.Equal(t, ptr("/host/seed-data"), cmd.LocalSeedLocation)
	assert.Equal(t, ptr(true), cmd.LoadSampleData)
	assert.Equal(t, ptr("testdb"), cmd.MongoDBInitDBDatabase)
	assert.Equal(t, ptr("/run/secrets/password"), cmd.MongoDBInitDBRootPasswordFile)
	assert.Equal(t, ptr("password123"), cmd.MongoDBInitDBRootPassword)
	assert.Equal(t, ptr("/run/secrets/username"), cmd.MongoDBInitDBRootUsernameFile)
	assert.Equal(t, ptr("admin"), cmd.MongoDBInitDBRootUsername)
	assert.Equal(t, ptr("voyage_api_key"), cmd.VoyageAPIKey)
	assert.Equal(t, ptr("/tmp/mongot.log"), cmd.MongotLogFile)
	assert.Equal(t, ptr("/tmp/runner.log"), cmd.RunnerLogFile)
	assert.Equal(t, ptr(false), cmd.DoNotTrack)
	assert.Equal(t, ptr("https://telemetry.example.com"), cmd.TelemetryBaseURL)
	assert.Equal(t, ptr(engine.LoopbackBinding(27017)), cmd.MongoDBPortBinding)
}

func TestAssemble_Empty(t *testing.T) {
	cmd, err := Assemble(models.CreateDeploymentOptions{})
	require.NoError(t, err)

	// Nothing is defaulted.
	assert.Equal(t, &engine.CreateDeploymentOptions{}, cmd)
	assert.True(t, cmd.MongoDBVersion.IsLatest())
	assert.Nil(t, cmd.CreationSource)
	assert.Nil(t, cmd.MongoDBPortBinding)
	assert.Nil(t, cmd.WaitUntilHealthyTimeout)
}

func TestAssemble_LatestEqualsAbsent(t *testing.T) {
	latest, err := Assemble(models.CreateDeploymentOptions{MongoDBVersion: ptr("latest")})
	require.NoError(t, err)
	absent, err := Assemble(models.CreateDeploymentOptions{})
	require.NoError(t, err)

	assert.Equal(t, absent, latest)
}

func TestAssemble_ZeroTimeoutMeansDoNotWait(t *testing.T) {
	cmd, err := Assemble(models.CreateDeploymentOptions{WaitUntilHealthyTimeout: ptr(uint32(0))})
	require.NoError(t, err)

	require.NotNil(t, cmd.WaitUntilHealthyTimeout)
	assert.Equal(t, time.Duration(0), *cmd.WaitUntilHealthyTimeout)
}

func TestAssemble_SpecificBinding(t *testing.T) {
	cmd, err := Assemble(models.CreateDeploymentOptions{
		MongoDBPortBinding: &models.PortBinding{Type: models.BindingTypeSpecific, IP: "192.0.2.0", Port: 27017},
	})
	require.NoError(t, err)

	require.NotNil(t, cmd.MongoDBPortBinding)
	assert.Equal(t, engine.SpecificBinding(netip.MustParseAddr("192.0.2.0"), 27017), *cmd.MongoDBPortBinding)
}

func TestAssemble_OtherCreationSource(t *testing.T) {
	cmd, err := Assemble(models.CreateDeploymentOptions{
		CreationSource: &models.CreationSource{Type: models.CreationSourceTypeOther, Source: "custom-tool"},
	})
	require.NoError(t, err)

	assert.Equal(t, engine.UnknownSource{Value: "custom-tool"}, cmd.CreationSource)
}

func TestAssemble_MalformedVersionAborts(t *testing.T) {
	req := fullRequest()
	req.MongoDBVersion = ptr("garbage")

	cmd, err := Assemble(req)
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, models.ErrMalformedVersion)
}

func TestAssemble_MalformedAddressAborts(t *testing.T) {
	req := fullRequest()
	req.MongoDBPortBinding = &models.PortBinding{Type: models.BindingTypeSpecific, IP: "not-an-ip", Port: 27017}

	cmd, err := Assemble(req)
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, models.ErrMalformedAddress)
}

func TestAssemble_UnknownBindingTypeAborts(t *testing.T) {
	req := fullRequest()
	req.MongoDBPortBinding = &models.PortBinding{Type: "Everywhere", Port: 27017}

	cmd, err := Assemble(req)
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, models.ErrInvalidEnum)
}

func TestAssemble_DoesNotAliasBinding(t *testing.T) {
	req := models.CreateDeploymentOptions{
		MongoDBPortBinding: &models.PortBinding{Type: models.BindingTypeAnyInterface, Port: 27017},
	}
	cmd, err := Assemble(req)
	require.NoError(t, err)

	req.MongoDBPortBinding.Port = 1
	assert.Equal(t, uint16(27017), cmd.MongoDBPortBinding.Port)
}

// =============================================================================
// Timeout Tests
// =============================================================================

func TestTimeout(t *testing.T) {
	assert.Nil(t, Timeout(nil))
	assert.Equal(t, ptr(time.Duration(0)), Timeout(ptr(uint32(0))))
	assert.Equal(t, ptr(90*time.Second), Timeout(ptr(uint32(90))))
	assert.Equal(t, ptr(time.Duration(4294967295)*time.Second), Timeout(ptr(uint32(4294967295))))
}

// =============================================================================
// ConnectionString Tests
// =============================================================================

func TestConnectionString(t *testing.T) {
	got := ConnectionString(models.GetConnectionStringOptions{
		ContainerIDOrName: "test_container",
		DBUsername:        ptr("test_user"),
		DBPassword:        ptr("test_pass"),
		Verify:            ptr(true),
	})

	assert.Equal(t, "test_container", got.ContainerIDOrName)
	assert.Equal(t, ptr("test_user"), got.DBUsername)
	assert.Equal(t, ptr("test_pass"), got.DBPassword)
	assert.Equal(t, ptr(true), got.Verify)
}

func TestConnectionString_OptionalFieldsStayNil(t *testing.T) {
	got := ConnectionString(models.GetConnectionStringOptions{ContainerIDOrName: "local1"})

	assert.Equal(t, engine.GetConnectionStringOptions{ContainerIDOrName: "local1"}, got)
}
