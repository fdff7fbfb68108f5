package repository_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// kvSuite holds the behaviour every KeyValueStore backend must share.
type kvSuite struct {
	suite.Suite

	store port.KeyValueStore
}

func (suite *kvSuite) TestSetGet() {
	tests := []struct {
		name      string
		key       string
		value     string
		wantError string
	}{
		{
			name:  "set json document: ok",
			key:   gofakeit.UUID(),
			value: `[{"productId":1,"quantity":2}]`,
		},
		{
			name:  "set empty document: ok",
			key:   gofakeit.UUID(),
			value: "",
		},
		{
			name:      "set with empty key: error",
			key:       "",
			value:     "x",
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			err := suite.store.Set(ctx, tt.key, tt.value)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			got, found, err := suite.store.Get(ctx, tt.key)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, tt.value, got)
		})
	}
}

func (suite *kvSuite) TestGetAbsent() {
	t := suite.T()

	got, found, err := suite.store.Get(t.Context(), gofakeit.UUID())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, got)

	_, _, err = suite.store.Get(t.Context(), "")
	require.EqualError(t, err, "key is empty")
}

func (suite *kvSuite) TestLastWriteWins() {
	t := suite.T()
	ctx := t.Context()
	key := gofakeit.UUID()

	for _, value := range []string{"first", "second", "third"} {
		require.NoError(t, suite.store.Set(ctx, key, value))
	}

	got, found, err := suite.store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "third", got)
}

func (suite *kvSuite) TestRemove() {
	tests := []struct {
		name      string
		key       string
		setup     bool
		wantError string
	}{
		{
			name:  "remove existing key: ok",
			key:   gofakeit.UUID(),
			setup: true,
		},
		{
			name: "remove absent key: no-op",
			key:  gofakeit.UUID(),
		},
		{
			name:      "remove with empty key: error",
			key:       "",
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			if tt.setup {
				require.NoError(t, suite.store.Set(ctx, tt.key, gofakeit.Sentence(3)))
			}

			err := suite.store.Remove(ctx, tt.key)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			_, found, err := suite.store.Get(ctx, tt.key)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}
