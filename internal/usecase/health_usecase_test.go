package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: refused") }

	t.Run("no dependencies", func(t *testing.T) {
		report := usecase.NewHealthUsecase(nil).Check(context.Background())
		assert.True(t, report.OK())
		assert.Nil(t, report.Checks)
	})

	t.Run("all reachable", func(t *testing.T) {
		report := usecase.NewHealthUsecase(map[string]usecase.Pinger{"database": up, "redis": nil}).Check(context.Background())
		assert.True(t, report.OK())
		assert.Equal(t, map[string]string{"database": "ok"}, report.Checks)
	})

	t.Run("one down", func(t *testing.T) {
		report := usecase.NewHealthUsecase(map[string]usecase.Pinger{"database": up, "redis": down}).Check(context.Background())
		assert.False(t, report.OK())
		assert.Equal(t, "degraded", report.Status)
		assert.Equal(t, "unavailable", report.Checks["redis"])
	})
}
