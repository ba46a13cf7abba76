package viewer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/gesture"
	"github.com/ziadkadry99/casegallery/internal/navigation"
	"github.com/ziadkadry99/casegallery/internal/preload"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Session is one open viewer page. Its navigation state, gesture
// bookkeeping and websocket writes are owned by the goroutine running loop;
// everything else reaches them through post.
type Session struct {
	ID string

	conn   *websocket.Conn
	ctx    context.Context
	events chan func()
	log    *zap.Logger

	ctrl *navigation.Controller
	gest *gesture.Interpreter
	last *navigation.Snapshot
}

func (v *Viewer) newSession(ctx context.Context, conn *websocket.Conn) *Session {
	s := &Session{
		ID:     uuid.New().String(),
		conn:   conn,
		ctx:    ctx,
		events: make(chan func(), 64),
	}
	s.log = v.log.With(zap.String("session", s.ID))

	pre := preload.New(ctx, v.fetcher, func(url string, err error) {
		s.post(func() {
			if err != nil {
				s.ctrl.MarkFailed(url)
			} else {
				s.ctrl.MarkLoaded(url)
			}
			s.sendIfChanged()
		})
	}, s.log)
	s.ctrl = navigation.New(v.corpus, pre)
	s.gest = gesture.New(s.ctrl, gesture.LoopScheduler{Post: func(f func()) {
		s.post(func() {
			f()
			s.sendIfChanged()
		})
	}}, v.gesture)
	return s
}

// post hands f to the session loop. It drops f once the session is closed.
func (s *Session) post(f func()) {
	select {
	case s.events <- f:
	case <-s.ctx.Done():
	}
}

// loop runs posted closures until the session context ends.
func (s *Session) loop(done chan<- struct{}) {
	defer close(done)
	defer s.gest.Close()
	for {
		select {
		case f := <-s.events:
			f()
		case <-s.ctx.Done():
			return
		}
	}
}

// apply executes one client message on the loop and always answers with a
// snapshot or an error.
func (s *Session) apply(m clientMessage) {
	if err := s.dispatch(m); err != nil {
		s.sendError(err.Error())
		return
	}
	s.sendSnapshot()
}

func (s *Session) dispatch(m clientMessage) error {
	switch m.Type {
	case msgSelect:
		if !s.ctrl.SelectCollection(m.Collection) {
			s.log.Debug("Ignoring unknown collection", zap.String("collection", m.Collection))
			return nil
		}
		s.ctrl.SetSidebarOpen(false)
	case msgPosition:
		s.ctrl.SetPosition(m.Position)
	case msgStep:
		s.ctrl.Step(m.Delta)
	case msgKey:
		s.ctrl.HandleKey(m.Key)
	case msgMode:
		s.ctrl.SetPersistentOverlayMode(m.Overlay)
	case msgSidebar:
		s.ctrl.SetSidebarOpen(m.Open)
	case msgWheel:
		s.gest.Wheel(m.at(), m.DeltaY)
	case msgTouchStart:
		s.gest.TouchStart(m.Touches, m.point(), m.OnAsset)
	case msgTouchMove:
		s.gest.TouchMove(m.Touches, m.point())
	case msgTouchEnd:
		s.gest.TouchEnd()
	case msgTouchCancel:
		s.gest.TouchCancel()
	case msgPress:
		s.gest.Press()
	case msgRelease:
		s.gest.Release()
	case msgLoaded:
		s.ctrl.MarkLoaded(m.URL)
	case msgLoadFailed:
		s.log.Warn("Client failed to load asset", zap.String("url", m.URL))
		s.ctrl.MarkFailed(m.URL)
	default:
		return fmt.Errorf("unknown message type: %s", m.Type)
	}
	return nil
}

func (s *Session) sendSnapshot() {
	snap := s.ctrl.Snapshot()
	s.last = &snap
	s.write(serverMessage{Type: "snapshot", SessionID: s.ID, State: &snap})
}

// sendIfChanged pushes a snapshot only when background work changed what
// the page shows.
func (s *Session) sendIfChanged() {
	snap := s.ctrl.Snapshot()
	if s.last != nil && reflect.DeepEqual(*s.last, snap) {
		return
	}
	s.last = &snap
	s.write(serverMessage{Type: "snapshot", SessionID: s.ID, State: &snap})
}

func (s *Session) sendError(message string) {
	s.write(serverMessage{Type: "error", SessionID: s.ID, Content: message})
}

func (s *Session) write(msg serverMessage) {
	if err := s.conn.WriteJSON(msg); err != nil {
		s.log.Debug("Websocket write", zap.Error(err))
	}
}

func (v *Viewer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		v.log.Warn("Websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	// The request context ends when the handler returns, not when the
	// socket closes, so sessions get their own.
	ctx, cancel := context.WithCancel(context.Background())
	s := v.newSession(ctx, conn)
	v.track(s)
	done := make(chan struct{})
	go s.loop(done)
	defer func() {
		v.untrack(s)
		cancel()
		<-done
		s.log.Debug("Session closed")
	}()

	s.log.Debug("Session opened")
	s.post(s.sendSnapshot)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("Websocket read", zap.Error(err))
			}
			return
		}

		var m clientMessage
		if err := json.Unmarshal(msg, &m); err != nil {
			s.post(func() { s.sendError("invalid message format") })
			continue
		}
		s.post(func() { s.apply(m) })
	}
}
