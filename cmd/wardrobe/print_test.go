package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"wardrobe101/internal/domain/entity"
)

func TestSignedInLine(t *testing.T) {
	sess := &entity.Session{Subject: "alex@example.com"}
	assert.Equal(t, "Signed in as alex@example.com", signedInLine(sess))

	sess.ExpiresAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	line := signedInLine(sess)
	assert.Contains(t, line, "Signed in as alex@example.com until ")
	assert.Contains(t, line, "2026")
	assert.NotContains(t, line, "0001")
}
