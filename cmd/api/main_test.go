package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) do(method, path string, body interface{}) (int, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	if err != nil {
		c.t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, env
}

// waitHealthy polls /health until the server answers
func waitHealthy(t *testing.T, base string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(base + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("server never became healthy")
}

func TestServeAnswersRequestsAndShutsDown(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("REDIS_URL", "")
	t.Setenv("LOCAL_UPLOAD_DIR", t.TempDir())
	t.Setenv("EMAIL_PROVIDER", "mock")
	t.Setenv("SMS_PROVIDER", "mock")
	t.Setenv("PUSH_PROVIDER", "mock")
	t.Setenv("BCRYPT_COST", "4")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, cfg, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer a.close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	served := make(chan error, 1)
	go func() { served <- a.serve(ctx, ln) }()

	c := &client{t: t, base: "http://" + ln.Addr().String()}
	waitHealthy(t, c.base)

	status, env := c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "amara@rika.app", "password": "password123", "name": "Amara Okafor",
	})
	if status != http.StatusCreated {
		t.Fatalf("register status = %d: %s", status, env.Error)
	}
	var auth struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &auth); err != nil || auth.Token == "" {
		t.Fatalf("no token in %s", env.Data)
	}
	c.token = auth.Token

	var completion struct {
		AlreadyCompleted bool `json:"alreadyCompleted"`
		PointsAwarded    int  `json:"pointsAwarded"`
	}
	for i, wantAlready := range []bool{false, true} {
		status, env = c.do(http.MethodPost, "/api/v1/routines/complete-day", nil)
		if status != http.StatusOK {
			t.Fatalf("complete-day %d status = %d: %s", i, status, env.Error)
		}
		if err := json.Unmarshal(env.Data, &completion); err != nil {
			t.Fatal(err)
		}
		if completion.AlreadyCompleted != wantAlready {
			t.Fatalf("complete-day %d already = %v", i, completion.AlreadyCompleted)
		}
	}

	status, env = c.do(http.MethodPost, "/api/v1/chat", map[string]string{"message": "how is my streak?"})
	if status != http.StatusOK {
		t.Fatalf("chat status = %d: %s", status, env.Error)
	}
	var reply struct {
		Reply string `json:"reply"`
	}
	json.Unmarshal(env.Data, &reply)
	if !strings.Contains(reply.Reply, "1-day streak") || !strings.Contains(reply.Reply, "completed your routine today") {
		t.Fatalf("reply = %q", reply.Reply)
	}

	status, _ = c.do(http.MethodPost, "/api/v1/analysis/hair", map[string]string{"hairType": "curly", "hairTexture": "thick"})
	if status != http.StatusCreated {
		t.Fatalf("hair analysis status = %d", status)
	}

	cancel()
	select {
	case err := <-served:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}
}
