// Gateway API implementation
package gateway

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/LFlinn-scottLogic/CyberChef/server/internal/pkg/textenc"
	"github.com/LFlinn-scottLogic/CyberChef/server/internal/protocol"
	"github.com/LFlinn-scottLogic/CyberChef/server/internal/services/auth"
	"github.com/LFlinn-scottLogic/CyberChef/server/internal/services/keys"
	"github.com/LFlinn-scottLogic/CyberChef/server/internal/services/operation"
	"github.com/LFlinn-scottLogic/CyberChef/server/internal/storage"
)

// Server represents the API gateway
type Server struct {
	addr       string
	authSvc    *auth.Service
	keySvc     *keys.Service
	opSvc      *operation.Service
	store      *storage.DB
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
}

// Client represents a connected WebSocket client
type Client struct {
	userID int64
	conn   *websocket.Conn
	send   chan *protocol.WebSocketResponse
	server *Server
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractToken extracts the token from "Bearer <token>" format
func extractToken(authHeader string) string {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// New creates a new gateway server
func New(addr string, authSvc *auth.Service, keySvc *keys.Service, opSvc *operation.Service, store *storage.DB) *Server {
	return &Server{
		addr:       addr,
		authSvc:    authSvc,
		keySvc:     keySvc,
		opSvc:      opSvc,
		store:      store,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Start starts the gateway server
func (s *Server) Start() error {
	router := mux.NewRouter()

	// Root endpoint - return OK for health checks
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("RC6 Cipher API Server"))
	}).Methods("GET", "OPTIONS")

	// Auth endpoints
	router.HandleFunc("/api/auth/register", s.handleRegister).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", s.handleLogin).Methods("POST", "OPTIONS")

	// Cipher operation endpoints
	router.HandleFunc("/api/encrypt", s.handleEncrypt).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/decrypt", s.handleDecrypt).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/operations", s.handleListOperations).Methods("GET", "OPTIONS")

	// Key registry endpoints
	router.HandleFunc("/api/keys", s.handleSaveKey).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/keys", s.handleListKeys).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/keys/{name}", s.handleDeleteKey).Methods("DELETE", "OPTIONS")

	// WebSocket endpoint
	router.HandleFunc("/ws", s.handleWebSocket)

	// Start hub goroutine
	go s.runHub()

	fmt.Printf("Gateway server listening on %s\n", s.addr)
	return http.ListenAndServe(s.addr, corsMiddleware(router))
}

// authenticate validates the request's bearer token and returns its claims
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) *auth.Claims {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		http.Error(w, "Missing authorization token", http.StatusUnauthorized)
		return nil
	}

	token := extractToken(authHeader)
	if token == "" {
		http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
		return nil
	}

	claims, err := s.authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return nil
	}
	return claims
}

// handleRegister handles user registration
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, err := s.authSvc.Register(req.Username, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := s.authSvc.CreateToken(userID, req.Username)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user_id":  userID,
		"token":    token,
		"username": req.Username,
	})
}

// handleLogin handles user login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := s.authSvc.Login(req.Username, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	claims, err := s.authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"token":    token,
	})
}

// handleEncrypt runs one encryption operation
func (s *Server) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	s.handleCipherOp(w, r, operation.DirectionEncrypt)
}

// handleDecrypt runs one decryption operation
func (s *Server) handleDecrypt(w http.ResponseWriter, r *http.Request) {
	s.handleCipherOp(w, r, operation.DirectionDecrypt)
}

func (s *Server) handleCipherOp(w http.ResponseWriter, r *http.Request, direction string) {
	claims := s.authenticate(w, r)
	if claims == nil {
		return
	}

	var req protocol.CipherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var resp *protocol.CipherResponse
	var err error
	if direction == operation.DirectionEncrypt {
		resp, err = s.opSvc.Encrypt(claims.UserID, &req)
	} else {
		resp, err = s.opSvc.Decrypt(claims.UserID, &req)
	}
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(&protocol.CipherResponse{Error: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleListOperations returns the caller's recent audit rows
func (s *Server) handleListOperations(w http.ResponseWriter, r *http.Request) {
	claims := s.authenticate(w, r)
	if claims == nil {
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	ops, err := s.store.ListOperations(claims.UserID, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	records := make([]*protocol.OperationRecord, 0, len(ops))
	for _, op := range ops {
		records = append(records, &protocol.OperationRecord{
			ID:        op.ID,
			UserID:    op.UserID,
			Direction: op.Direction,
			Mode:      op.Mode,
			InputSize: op.InputSize,
			CreatedAt: op.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"operations": records})
}

// handleSaveKey stores named key material for the caller
func (s *Server) handleSaveKey(w http.ResponseWriter, r *http.Request) {
	claims := s.authenticate(w, r)
	if claims == nil {
		return
	}

	var req protocol.SaveKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	keyEncoding := req.KeyEncoding
	if keyEncoding == "" {
		keyEncoding = textenc.Hex
	}
	material, err := textenc.Decode(req.Key, keyEncoding)
	if err != nil {
		http.Error(w, fmt.Sprintf("key: %v", err), http.StatusBadRequest)
		return
	}

	keyID, err := s.keySvc.Save(claims.UserID, req.Name, material, req.Rounds)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"key_id": keyID,
		"name":   req.Name,
	})
}

// handleListKeys lists the caller's stored keys (metadata only, never the
// key material)
func (s *Server) handleListKeys(w http.ResponseWriter, r *http.Request) {
	claims := s.authenticate(w, r)
	if claims == nil {
		return
	}

	stored, err := s.keySvc.List(claims.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	list := make([]*protocol.CipherKey, 0, len(stored))
	for _, key := range stored {
		list = append(list, &protocol.CipherKey{
			ID:        key.ID,
			Name:      key.Name,
			Rounds:    key.Rounds,
			CreatedAt: key.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"keys": list})
}

// handleDeleteKey removes one of the caller's stored keys
func (s *Server) handleDeleteKey(w http.ResponseWriter, r *http.Request) {
	claims := s.authenticate(w, r)
	if claims == nil {
		return
	}

	name := mux.Vars(r)["name"]
	if err := s.keySvc.Delete(claims.UserID, name); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleWebSocket handles WebSocket connections for interactive operations
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	// Token from query parameter first, Authorization header as fallback
	token := r.URL.Query().Get("token")
	if token == "" {
		token = extractToken(r.Header.Get("Authorization"))
	}

	if token == "" {
		log.Println("WebSocket connection rejected: no token provided")
		conn.Close()
		return
	}

	claims, err := s.authSvc.ValidateToken(token)
	if err != nil {
		log.Printf("WebSocket connection rejected: invalid token - %v", err)
		conn.Close()
		return
	}

	client := &Client{
		userID: claims.UserID,
		conn:   conn,
		send:   make(chan *protocol.WebSocketResponse, 256),
		server: s,
	}

	s.register <- client
	log.Printf("WebSocket client connected: user %d", claims.UserID)

	go client.readPump()
	go client.writePump()
}

// runHub manages all connected clients
func (s *Server) runHub() {
	for {
		select {
		case client := <-s.register:
			s.mu.Lock()
			s.clients[client] = true
			s.mu.Unlock()

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}
			s.mu.Unlock()
			log.Printf("WebSocket client disconnected: user %d", client.userID)
		}
	}
}

// readPump reads cipher requests from the WebSocket connection and queues
// their responses
func (c *Client) readPump() {
	defer func() {
		c.server.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(time.Hour))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(time.Hour))
		return nil
	})

	for {
		var req protocol.WebSocketRequest
		if err := c.conn.ReadJSON(&req); err != nil {
			break
		}

		resp := c.runRequest(&req)
		select {
		case c.send <- resp:
		default:
			// Slow consumer, drop the connection
			return
		}
	}
}

// runRequest executes one interactive operation
func (c *Client) runRequest(req *protocol.WebSocketRequest) *protocol.WebSocketResponse {
	var result *protocol.CipherResponse
	var err error

	switch req.Direction {
	case operation.DirectionEncrypt:
		result, err = c.server.opSvc.Encrypt(c.userID, &req.Request)
	case operation.DirectionDecrypt:
		result, err = c.server.opSvc.Decrypt(c.userID, &req.Request)
	default:
		err = fmt.Errorf("unknown direction %q", req.Direction)
	}

	resp := &protocol.WebSocketResponse{
		ID:        req.ID,
		Timestamp: time.Now().Unix(),
	}
	if err != nil {
		resp.Status = "error"
		resp.Response = protocol.CipherResponse{Error: err.Error()}
	} else {
		resp.Status = "success"
		resp.Response = *result
	}
	return resp
}

// writePump writes queued responses to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case resp, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Channel closed
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(resp); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
