package site_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/A5-Website/atom-5-nexus/builder"
	"github.com/A5-Website/atom-5-nexus/contact"
	"github.com/A5-Website/atom-5-nexus/metrics"
	"github.com/A5-Website/atom-5-nexus/propagation"
	"github.com/A5-Website/atom-5-nexus/scene"
	"github.com/A5-Website/atom-5-nexus/site"
)

type mailbox struct {
	mu   sync.Mutex
	sent []contact.Message
	fail error
}

func (m *mailbox) Send(_ context.Context, msg contact.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, msg)
	return nil
}

type ServerSuite struct {
	suite.Suite
	driver  *scene.Driver
	mail    *mailbox
	metrics *metrics.Registry
	srv     *site.Server
}

func (s *ServerSuite) SetupTest() {
	sc, err := scene.Build(scene.Params{
		Graph: builder.ProximityParams{
			NodeCount: 10, RegionHalfExtent: 1, MaxConnectionDistance: 100,
			MinConnections: 9, MaxConnections: 9,
		},
		Seed: 7,
	})
	s.Require().NoError(err)

	s.metrics = metrics.NewRegistry()
	s.driver, err = scene.NewDriver(sc,
		scene.WithMetrics(s.metrics),
		scene.WithPropagation(propagation.WithFlowProbability(1), propagation.WithMaxGenerations(1)))
	s.Require().NoError(err)

	s.mail = &mailbox{}
	relay := contact.NewRelay(s.mail)
	s.srv = site.NewServer(s.driver, relay, site.WithMetrics(s.metrics))
}

func (s *ServerSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func (s *ServerSuite) errorOf(rec *httptest.ResponseRecorder) string {
	var e site.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &e))
	return e.Error
}

func (s *ServerSuite) TestContact_Sent() {
	rec := s.do(http.MethodPost, "/api/contact", `{"email":"a@b.co","message":"hi\nthere"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("*", rec.Header().Get("Access-Control-Allow-Origin"))

	var resp site.ContactResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.True(resp.Success)
	s.NotEmpty(resp.ID)

	s.Require().Len(s.mail.sent, 1)
	s.Equal(resp.ID, s.mail.sent[0].ID)
	s.Contains(s.mail.sent[0].HTML, "hi<br>there")
}

func (s *ServerSuite) TestContact_Invalid() {
	rec := s.do(http.MethodPost, "/api/contact", `{"email":"a@b.co"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(contact.MsgRequired, s.errorOf(rec))

	rec = s.do(http.MethodPost, "/api/contact", `{"email":"a@b.co","message":"`+strings.Repeat("x", 5001)+`"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(contact.MsgTooLong, s.errorOf(rec))

	rec = s.do(http.MethodPost, "/api/contact", `{not json`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Empty(s.mail.sent)
}

func (s *ServerSuite) TestContact_DeliveryFailure() {
	s.mail.fail = errors.New("provider said no")
	rec := s.do(http.MethodPost, "/api/contact", `{"email":"a@b.co","message":"hi"}`)
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal(site.MsgDeliveryFailed, s.errorOf(rec))
	s.NotContains(rec.Body.String(), "provider said no")
}

func (s *ServerSuite) TestPreflight() {
	rec := s.do(http.MethodOptions, "/api/contact", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Access-Control-Allow-Headers"), "content-type")
	s.Empty(rec.Body.String())
}

func (s *ServerSuite) TestNav() {
	rec := s.do(http.MethodGet, "/api/nav?path=/research", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var nav site.NavResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &nav))
	s.Equal("/research", nav.Path)
	for _, l := range nav.Links {
		s.Equal(l.Path == "/research", l.Active, l.Path)
	}
}

func (s *ServerSuite) TestScene() {
	rec := s.do(http.MethodGet, "/api/scene", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var snap scene.Snapshot
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &snap))
	s.Len(snap.Nodes, 10)
	s.Len(snap.Edges, 90)
	s.Require().Len(snap.Components, 1)
	s.Len(snap.Components[0], 10)
	s.Empty(snap.Isolated)
	s.Equal(int64(7), snap.Seed)
}

func (s *ServerSuite) TestReach() {
	rec := s.do(http.MethodGet, "/api/scene/reach/4?undirected=true", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var reach site.ReachResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &reach))
	s.Equal(4, reach.Node)
	s.True(reach.Undirected)
	s.Require().Len(reach.Nodes, 10)
	s.Equal(4, reach.Nodes[0])

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/scene/reach/10", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/scene/reach/x", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/scene/reach/1?undirected=maybe", "").Code)
}

func (s *ServerSuite) TestTrigger_QueuedUntilNextTick() {
	rec := s.do(http.MethodPost, "/api/scene/trigger", `{"node":0}`)
	s.Require().Equal(http.StatusAccepted, rec.Code)

	var before map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(s.do(http.MethodGet, "/api/scene/frame", "").Body.Bytes(), &before))
	s.JSONEq(`[]`, string(before["pulses"]))
	s.NotContains(before, "edges")

	s.driver.Step(0.5)

	var after struct {
		Clock  float64
		Pulses []struct {
			Source     int
			Generation int
			Visible    bool
		}
	}
	s.Require().NoError(json.Unmarshal(s.do(http.MethodGet, "/api/scene/frame", "").Body.Bytes(), &after))
	s.Equal(0.5, after.Clock)
	s.Len(after.Pulses, 9)
	for _, p := range after.Pulses {
		s.Equal(0, p.Source)
		s.Equal(1, p.Generation)
		s.True(p.Visible)
	}
}

func (s *ServerSuite) TestTrigger_Errors() {
	s.Equal(http.StatusNotFound, s.do(http.MethodPost, "/api/scene/trigger", `{"node":10}`).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/scene/trigger", `{}`).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/scene/trigger", `{"node":-1}`).Code)
	s.Equal(http.StatusMethodNotAllowed, s.do(http.MethodGet, "/api/scene/trigger", "").Code)
}

func (s *ServerSuite) TestHealthAndMetrics() {
	rec := s.do(http.MethodGet, "/healthz", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"nodes":10`)

	rec = s.do(http.MethodGet, "/metrics", "")
	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, `nexus_http_requests_total{method="GET",path="GET /healthz",status="200"} 1`)
	s.Contains(body, "nexus_scene_nodes 10")
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func TestServer_NoRelay(t *testing.T) {
	sc, err := scene.Build(scene.Params{Graph: builder.ProximityParams{NodeCount: 2, RegionHalfExtent: 1, MaxConnectionDistance: 5, MaxConnections: 1}})
	require.NoError(t, err)
	d, err := scene.NewDriver(sc)
	require.NoError(t, err)

	h := site.NewServer(d, nil, site.WithAllowOrigin("https://atom5.example")).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"email":"a@b.co","message":"x"}`)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "https://atom5.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code, "metrics are only served when configured")
}

func TestServer_FrameStream(t *testing.T) {
	sc, err := scene.Build(scene.Params{Graph: builder.ProximityParams{
		NodeCount: 6, RegionHalfExtent: 1, MaxConnectionDistance: 5, MinConnections: 5, MaxConnections: 5,
	}, Seed: 3})
	require.NoError(t, err)
	reg := metrics.NewRegistry()
	d, err := scene.NewDriver(sc, scene.WithMetrics(reg))
	require.NoError(t, err)

	ts := httptest.NewServer(site.NewServer(d, nil, site.WithMetrics(reg)).Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/frames", nil)
	require.NoError(t, err)
	defer conn.Close()

	// Tick until the subscription has seen a frame.
	done := make(chan struct{})
	defer close(done)
	go func() {
		clock := 0.0
		tick := time.NewTicker(5 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-done:
				return
			case <-tick.C:
				clock += 0.01
				d.Step(clock)
			}
		}
	}()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var frame map[string]json.RawMessage
	require.NoError(t, conn.ReadJSON(&frame))
	var clock float64
	require.NoError(t, json.Unmarshal(frame["clock"], &clock))
	assert.Greater(t, clock, 0.0)
	var nodes []json.RawMessage
	require.NoError(t, json.Unmarshal(frame["nodes"], &nodes))
	assert.Len(t, nodes, 6)
	assert.NotContains(t, frame, "edges", "edge geometry comes from /api/scene only")
}
