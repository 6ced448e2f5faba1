// Package apitest runs an in-process Blossom backend stub over a real
// listener so client and session tests exercise the full transport path.
package apitest

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/blossomapp/client/api/transport"
	"github.com/blossomapp/client/domain"
)

type credentials struct {
	password string
	user     *domain.User
}

// Server is a minimal Blossom API double. Tokens are opaque strings seeded
// by tests or issued by the login/register handlers.
type Server struct {
	URL string

	ln net.Listener

	mu            sync.Mutex
	accounts      map[string]credentials  // email -> credentials
	tokens        map[string]*domain.User // token -> user
	sessions      map[string]transport.SessionDataResponse
	posts         []domain.Post
	forums        []domain.Forum
	directory     []domain.User
	conversations []domain.Conversation
	messages      map[string][]domain.Message // conversation ID -> messages

	requests atomic.Int64
	lastAuth atomic.Value // string: last Authorization header seen
}

// Start binds a loopback listener and serves until the test ends.
func Start(t *testing.T) *Server {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("apitest: listen failed: %v", err)
	}

	s := &Server{
		URL:      "http://" + ln.Addr().String(),
		ln:       ln,
		accounts: make(map[string]credentials),
		tokens:   make(map[string]*domain.User),
		sessions: make(map[string]transport.SessionDataResponse),
		messages: make(map[string][]domain.Message),
	}
	s.lastAuth.Store("")

	r := router.New()
	r.POST("/api/auth/register", s.track(s.handleRegister))
	r.POST("/api/auth/login", s.track(s.handleLogin))
	r.GET("/api/auth/session-data", s.track(s.handleSessionData))
	r.GET("/api/auth/me", s.track(s.requireAuth(s.handleMe)))
	r.POST("/api/auth/logout", s.track(s.handleLogout))
	r.GET("/api/posts", s.track(s.requireAuth(s.handlePosts)))
	r.GET("/api/forums", s.track(s.requireAuth(s.handleForums)))
	r.GET("/api/users/search", s.track(s.requireAuth(s.handleSearchUsers)))
	r.POST("/api/messages", s.track(s.requireAuth(s.handleSendMessage)))
	r.GET("/api/conversations", s.track(s.requireAuth(s.handleConversations)))
	r.GET("/api/conversations/{id}/messages", s.track(s.requireAuth(s.handleMessages)))

	go func() {
		_ = fasthttp.Serve(ln, r.Handler)
	}()

	t.Cleanup(func() {
		_ = ln.Close()
	})

	// The listener is ready before Serve runs; give the goroutine a tick.
	time.Sleep(5 * time.Millisecond)
	return s
}

// SeedToken makes the given token valid for the given user.
func (s *Server) SeedToken(token string, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = user
}

// RevokeToken invalidates a previously seeded token.
func (s *Server) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// SeedAccount registers an email/password pair.
func (s *Server) SeedAccount(email, password string, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = credentials{password: password, user: user}
}

// SeedSession makes an OAuth session ID exchangeable.
func (s *Server) SeedSession(sessionID string, data transport.SessionDataResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = data
}

// SeedPosts sets the feed returned by the posts endpoint.
func (s *Server) SeedPosts(posts []domain.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = posts
}

// SeedForums sets the forums listing.
func (s *Server) SeedForums(forums []domain.Forum) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forums = forums
}

// SeedDirectory sets the members returned by the user search endpoint.
func (s *Server) SeedDirectory(users []domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.directory = users
}

// Requests returns how many requests reached the stub.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

// LastAuthorization returns the Authorization header of the latest request.
func (s *Server) LastAuthorization() string {
	v, _ := s.lastAuth.Load().(string)
	return v
}

func (s *Server) track(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		s.requests.Add(1)
		s.lastAuth.Store(string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization)))
		next(ctx)
	}
}

func (s *Server) requireAuth(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		header := string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization))
		token := strings.TrimPrefix(header, "Bearer ")

		s.mu.Lock()
		user, ok := s.tokens[token]
		s.mu.Unlock()

		if header == "" || !ok {
			writeJSON(ctx, http.StatusUnauthorized, transport.ErrorResponse{Detail: "Not authenticated"})
			return
		}
		ctx.SetUserValue("user", user)
		next(ctx)
	}
}

func (s *Server) handleRegister(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" {
		writeJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{Detail: "invalid payload"})
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[req.Email]; exists {
		s.mu.Unlock()
		writeJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{Detail: "Email already registered"})
		return
	}
	user := &domain.User{
		UserID:    "user_" + uuid.NewString()[:12],
		Email:     req.Email,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	token := "tok_" + uuid.NewString()
	s.accounts[req.Email] = credentials{password: req.Password, user: user}
	s.tokens[token] = user
	s.mu.Unlock()

	writeJSON(ctx, http.StatusOK, transport.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

func (s *Server) handleLogin(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{Detail: "invalid payload"})
		return
	}

	s.mu.Lock()
	creds, ok := s.accounts[req.Email]
	if !ok || creds.password != req.Password {
		s.mu.Unlock()
		writeJSON(ctx, http.StatusUnauthorized, transport.ErrorResponse{Detail: "Incorrect email or password"})
		return
	}
	token := "tok_" + uuid.NewString()
	s.tokens[token] = creds.user
	s.mu.Unlock()

	writeJSON(ctx, http.StatusOK, transport.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        creds.user,
	})
}

func (s *Server) handleSessionData(ctx *fasthttp.RequestCtx) {
	sessionID := string(ctx.Request.Header.Peek("X-Session-ID"))
	if sessionID == "" {
		writeJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{Detail: "X-Session-ID header required"})
		return
	}

	s.mu.Lock()
	data, ok := s.sessions[sessionID]
	s.mu.Unlock()

	if !ok {
		writeJSON(ctx, http.StatusUnauthorized, transport.ErrorResponse{Detail: "Invalid session ID"})
		return
	}
	writeJSON(ctx, http.StatusOK, data)
}

func (s *Server) handleMe(ctx *fasthttp.RequestCtx) {
	user, _ := ctx.UserValue("user").(*domain.User)
	writeJSON(ctx, http.StatusOK, user)
}

func (s *Server) handleLogout(ctx *fasthttp.RequestCtx) {
	header := string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization))
	token := strings.TrimPrefix(header, "Bearer ")

	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()

	writeJSON(ctx, http.StatusOK, transport.StatusResponse{Message: "Logged out successfully"})
}

func (s *Server) handlePosts(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	posts := append([]domain.Post(nil), s.posts...)
	s.mu.Unlock()
	if posts == nil {
		posts = []domain.Post{}
	}
	writeJSON(ctx, http.StatusOK, posts)
}

func (s *Server) handleForums(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	forums := append([]domain.Forum(nil), s.forums...)
	s.mu.Unlock()
	if forums == nil {
		forums = []domain.Forum{}
	}
	writeJSON(ctx, http.StatusOK, forums)
}

func (s *Server) handleSearchUsers(ctx *fasthttp.RequestCtx) {
	q := strings.ToLower(string(ctx.QueryArgs().Peek("q")))

	s.mu.Lock()
	var matched []domain.User
	for _, u := range s.directory {
		if q == "" || strings.Contains(strings.ToLower(u.Name), q) {
			matched = append(matched, u)
		}
	}
	s.mu.Unlock()

	if matched == nil {
		matched = []domain.User{}
	}
	writeJSON(ctx, http.StatusOK, matched)
}

func (s *Server) handleSendMessage(ctx *fasthttp.RequestCtx) {
	sender, _ := ctx.UserValue("user").(*domain.User)

	var req transport.MessageSendRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.RecipientID == "" || req.Content == "" {
		writeJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{Detail: "recipient_id and content are required"})
		return
	}

	s.mu.Lock()
	conv := s.findConversationLocked(sender.UserID, req.RecipientID)
	if conv == nil {
		s.conversations = append(s.conversations, domain.Conversation{
			ConversationID:   "conv_" + uuid.NewString()[:12],
			Participants:     []string{sender.UserID, req.RecipientID},
			ParticipantNames: map[string]string{sender.UserID: sender.Name},
			CreatedAt:        time.Now().UTC(),
		})
		conv = &s.conversations[len(s.conversations)-1]
	}
	msg := domain.Message{
		MessageID:      "msg_" + uuid.NewString()[:12],
		ConversationID: conv.ConversationID,
		SenderID:       sender.UserID,
		SenderName:     sender.Name,
		Content:        req.Content,
		CreatedAt:      time.Now().UTC(),
	}
	s.messages[conv.ConversationID] = append(s.messages[conv.ConversationID], msg)
	conv.LastMessage = msg.Content
	conv.LastMessageAt = &msg.CreatedAt
	s.mu.Unlock()

	writeJSON(ctx, http.StatusOK, msg)
}

func (s *Server) handleConversations(ctx *fasthttp.RequestCtx) {
	user, _ := ctx.UserValue("user").(*domain.User)

	s.mu.Lock()
	var convs []domain.Conversation
	for _, c := range s.conversations {
		for _, p := range c.Participants {
			if p == user.UserID {
				convs = append(convs, c)
				break
			}
		}
	}
	s.mu.Unlock()

	if convs == nil {
		convs = []domain.Conversation{}
	}
	writeJSON(ctx, http.StatusOK, convs)
}

func (s *Server) handleMessages(ctx *fasthttp.RequestCtx) {
	conversationID, _ := ctx.UserValue("id").(string)

	s.mu.Lock()
	msgs := append([]domain.Message(nil), s.messages[conversationID]...)
	s.mu.Unlock()

	if msgs == nil {
		writeJSON(ctx, http.StatusNotFound, transport.ErrorResponse{Detail: "Conversation not found"})
		return
	}
	writeJSON(ctx, http.StatusOK, msgs)
}

func (s *Server) findConversationLocked(a, b string) *domain.Conversation {
	for i := range s.conversations {
		c := &s.conversations[i]
		if len(c.Participants) != 2 {
			continue
		}
		if (c.Participants[0] == a && c.Participants[1] == b) ||
			(c.Participants[0] == b && c.Participants[1] == a) {
			return c
		}
	}
	return nil
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, payload any) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}
