package internal

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))

	ctx = WithRequestID(ctx)
	id := GetRequestID(ctx)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	assert.Equal(t, id, GetRequestID(WithRequestID(ctx)))
	assert.NotEqual(t, GenerateRequestID(), GenerateRequestID())
}
