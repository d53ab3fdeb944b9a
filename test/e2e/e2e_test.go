// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stack-advisor/internal/advisor"
	"stack-advisor/internal/catalog"
	"stack-advisor/internal/common/camunda"
	"stack-advisor/internal/common/database"
	"stack-advisor/internal/common/logger"
	"stack-advisor/internal/decisiontree"

	rts "stack-advisor/internal/workers/recommendation/recommend-tech-stack"
)

const processID = "recommend-tech-stack-e2e"

type environment struct {
	zeebe *camunda.Client
	redis *miniredis.Miniredis
}

// setup connects to the gateway named by ZEEBE_ADDRESS, deploys the test
// process and starts a worker backed by an in-memory redis.
func setup(t *testing.T) *environment {
	t.Helper()

	addr := os.Getenv("ZEEBE_ADDRESS")
	if addr == "" {
		t.Skip("ZEEBE_ADDRESS not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := camunda.NewClient(ctx, &camunda.ClientConfig{
		GatewayAddress:         addr,
		UsePlaintextConnection: true,
	})
	require.NoError(t, err, "zeebe connection failed")
	t.Cleanup(func() { _ = client.Close() })

	_, err = client.GetClient().NewDeployResourceCommand().
		AddResourceFile("testdata/recommend-tech-stack.bpmn").
		Send(ctx)
	require.NoError(t, err, "deploy failed")

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	resolver, err := catalog.DefaultResolver()
	require.NoError(t, err)

	log := logger.NewTestLogger(t)
	svc := advisor.NewService(resolver, advisor.WithLogger(log))
	cfg := &rts.Config{Timeout: 10 * time.Second, MaxJobsActive: 5, CacheEnabled: true}
	handler := rts.NewHandler(cfg, svc, database.NewJSONCache(rdb, "e2e:", time.Minute), nil, log)

	w := camunda.NewWorker(client.GetClient(), camunda.WorkerOptions{
		TaskType:      rts.TaskType,
		MaxJobsActive: cfg.MaxJobsActive,
		Timeout:       cfg.Timeout,
	}, handler, log)
	t.Cleanup(w.Stop)

	return &environment{zeebe: client, redis: mr}
}

func (e *environment) run(t *testing.T, variables map[string]interface{}) map[string]json.RawMessage {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd, err := e.zeebe.GetClient().NewCreateInstanceCommand().
		BPMNProcessId(processID).
		LatestVersion().
		VariablesFromMap(variables)
	require.NoError(t, err)

	resp, err := cmd.WithResult().Send(ctx)
	require.NoError(t, err, "process instance did not complete")

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(resp.GetVariables()), &out))
	return out
}

func TestRecommendTechStack_E2E(t *testing.T) {
	env := setup(t)

	variables := map[string]interface{}{
		"requestId": "e2e-1",
		"answers": []map[string]string{
			{"questionId": "app-type", "value": "web"},
			{"questionId": "timeline", "value": "fast"},
			{"questionId": "complexity", "value": "simple"},
		},
	}

	out := env.run(t, variables)

	require.Contains(t, out, "recommendation")
	var rec decisiontree.Record
	require.NoError(t, json.Unmarshal(out["recommendation"], &rec))
	assert.Equal(t, "app-type=web → timeline=fast → complexity=simple", rec.DecisionPath)
	assert.Len(t, env.redis.Keys(), 1, "the record is cached after the first run")

	again := env.run(t, variables)
	assert.JSONEq(t, string(out["recommendation"]), string(again["recommendation"]))
}

func TestRecommendTechStack_E2E_MalformedIsCaught(t *testing.T) {
	env := setup(t)

	out := env.run(t, map[string]interface{}{
		"answers": map[string]string{"app-type": "web"},
	})

	assert.NotContains(t, out, "recommendation")
	assert.Empty(t, env.redis.Keys())
}
