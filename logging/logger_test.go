package logging_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"contrarian-grid-engine/logging"
	"contrarian-grid-engine/ordermath"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := logging.New(logging.Config{Level: "not-a-level"})
	require.Error(t, err)
}

func TestNewDefaultConfigWritesToStdout(t *testing.T) {
	l, err := logging.New(logging.DefaultConfig())
	require.NoError(t, err)
	defer l.Close()

	l.LogFill("BTCUSDT", true, ordermath.KindLongEntryInitialNormal, 1000, 100, 1, 0.01, 0)
	l.LogOrderSkip("BTCUSDT", true, "no_trigger", 1000)
	l.LogBankruptcy(1000, -1, 0)
	l.LogFatal(errors.New("boom"), 1000, "BTCUSDT")
}
