package relay

import (
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Mandalorian7773/Collabie/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins before exposing this outside the reverse proxy
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades authenticated requests to relay connections. The identity
// comes from the verified token subject, never from client-supplied fields.
type Handler struct {
	Relay     *Relay
	PublicKey *rsa.PublicKey
}

func NewHandler(relay *Relay, publicKey *rsa.PublicKey) *Handler {
	return &Handler{
		Relay:     relay,
		PublicKey: publicKey,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := tokenFromRequest(r)
	if token == "" {
		http.Error(w, "missing access token", http.StatusUnauthorized)
		return
	}

	claims, err := utils.ParseAndVerifySign(token, h.PublicKey)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// The handshake cannot refresh; the client must refresh over
			// HTTP and reconnect.
			http.Error(w, "token expired, refresh and reconnect", http.StatusUnauthorized)
			return
		}
		http.Error(w, "invalid access token", http.StatusUnauthorized)
		return
	}

	conn, upgradeErr := upgrader.Upgrade(w, r, nil)
	if upgradeErr != nil {
		log.Error().Err(upgradeErr).Msg("relay: upgrade failed")
		return
	}

	client := NewClient(uuid.New().String(), claims.Sub, conn)

	h.Relay.HandleConnect(client)

	go client.writePump()
	go client.readPump(h.Relay)
}

func tokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}
