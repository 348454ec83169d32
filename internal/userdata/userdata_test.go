package userdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	ud, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, UserTypeRegular, ud.UserType)
}

func TestLoad_NewUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"userType":"new","name":"demo"}`), 0o644))

	ud, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, UserTypeNew, ud.UserType)
}

func TestLoad_MalformedFallsBackToRegular(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	ud, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, UserTypeRegular, ud.UserType)
}

func TestLoad_UnknownTypeIsRegular(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"userType":"vip"}`), 0o644))

	ud, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, UserTypeRegular, ud.UserType)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	require.NoError(t, Save(path, UserData{UserType: UserTypeExisting}))

	ud, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, UserTypeExisting, ud.UserType)
}

func TestParseUserType(t *testing.T) {
	assert.Equal(t, UserTypeNew, ParseUserType("NEW"))
	assert.Equal(t, UserTypeExisting, ParseUserType(" existing "))
	assert.Equal(t, UserTypeRegular, ParseUserType(""))
	assert.Equal(t, UserTypeRegular, ParseUserType("regular"))
	assert.True(t, Valid("new"))
	assert.False(t, Valid("New"))
}
