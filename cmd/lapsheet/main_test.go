package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lapsheet/internal/models"
)

type serviceMock struct{ mock.Mock }

func (m *serviceMock) Create(ctx context.Context, in models.InsertUser) (*models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *serviceMock) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestRun_CreateUser(t *testing.T) {
	svc := new(serviceMock)
	svc.On("Create", mock.Anything, models.InsertUser{Username: "alice", Password: "hunter2"}).
		Return(&models.User{ID: "id-1", Username: "alice", Password: "hashed"}, nil).Once()

	var out bytes.Buffer
	err := run(context.Background(), svc, []string{"create-user"},
		strings.NewReader(`{"username":"alice","password":"hunter2"}`), &out)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, map[string]any{"id": "id-1", "username": "alice"}, got)
	svc.AssertExpectations(t)
}

func TestRun_CreateUser_InvalidPayload(t *testing.T) {
	svc := new(serviceMock)

	err := run(context.Background(), svc, []string{"create-user"}, strings.NewReader(`{"username":"alice"}`), &bytes.Buffer{})
	assert.ErrorIs(t, err, models.ErrInvalidPayload)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRun_GetUser(t *testing.T) {
	svc := new(serviceMock)
	svc.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: "id-1", Username: "alice", Password: "hashed"}, nil).Once()
	svc.On("GetByUsername", mock.Anything, "bob").Return(nil, errors.New("not found")).Once()

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), svc, []string{"get-user", "alice"}, nil, &out))
	assert.NotContains(t, out.String(), "hashed")
	assert.Contains(t, out.String(), `"id-1"`)

	assert.Error(t, run(context.Background(), svc, []string{"get-user", "bob"}, nil, &bytes.Buffer{}))
	svc.AssertExpectations(t)
}

func TestRun_UsageErrors(t *testing.T) {
	svc := new(serviceMock)

	assert.ErrorIs(t, run(context.Background(), svc, []string{"get-user"}, nil, &bytes.Buffer{}), errUsage)
	assert.ErrorIs(t, run(context.Background(), svc, []string{"drop-all"}, nil, &bytes.Buffer{}), errUsage)
	assert.ErrorIs(t, run(context.Background(), svc, []string{"migrate"}, nil, &bytes.Buffer{}), errUsage,
		"migrate is handled before the user service is built")
}
