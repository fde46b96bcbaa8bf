package services

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	success := operationsTotal.WithLabelValues("metrics_test", resultSuccess)
	rejected := operationsTotal.WithLabelValues("metrics_test", KindRoomIDInvalid.String())
	beforeSuccess := testutil.ToFloat64(success)
	beforeRejected := testutil.ToFloat64(rejected)

	observe("metrics_test", time.Now(), nil)
	observe("metrics_test", time.Now(), newError(KindRoomIDInvalid, ReasonRoomFull))
	observe("metrics_test", time.Now(), newError(KindRoomIDInvalid, ReasonRoomFull))

	assert.Equal(t, beforeSuccess+1, testutil.ToFloat64(success))
	assert.Equal(t, beforeRejected+2, testutil.ToFloat64(rejected))
}
