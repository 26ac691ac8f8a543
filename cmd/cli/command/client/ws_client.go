package client

// ws_client.go streams live notifications from /ws/notifications.

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fatih/color"
	"github.com/gorilla/websocket"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/models"
	"fandomhub/internal/microservices/http-api/service"
	hubws "fandomhub/internal/microservices/websocket"
)

// WebSocketURL turns the API base URL into the notification stream URL
func WebSocketURL(apiURL string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid API URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported API URL scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws/notifications"
	return u.String(), nil
}

// ListenNotifications prints every pushed notification to out until ctx is
// cancelled or the server closes the connection
func ListenNotifications(ctx context.Context, wsURL, token string, out io.Writer) error {
	header := http.Header{}
	header.Add("Authorization", "Bearer "+token)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connection failed with status %d: %w", resp.StatusCode, err)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer conn.Close()

	// unblock ReadMessage when the caller gives up
	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	})
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		frame, err := hubws.DecodeFrame(data)
		if err != nil {
			color.New(color.FgRed).Fprintf(out, "malformed frame: %v\n", err)
			continue
		}
		if frame.Event != service.EventReceiveNotification {
			continue
		}

		var n dto.NotificationDto
		if err := json.Unmarshal(frame.Payload, &n); err != nil {
			color.New(color.FgRed).Fprintf(out, "malformed notification: %v\n", err)
			continue
		}
		PrintNotification(out, n)
	}
}

// PrintNotification writes one notification line
func PrintNotification(out io.Writer, n dto.NotificationDto) {
	label := color.New(color.FgCyan, color.Bold)
	if n.Type == models.NotificationNewEvent {
		label = color.New(color.FgMagenta, color.Bold)
	}
	label.Fprintf(out, "[%s]", n.Type)
	fmt.Fprintf(out, " #%d fandom %d by %s at %s\n",
		n.ID, n.FandomID, n.NotifierID, n.CreatedAt.Local().Format("2006-01-02 15:04"))
}

// PrintNotificationState writes one read-model row with its viewed/hidden markers
func PrintNotificationState(out io.Writer, n dto.NotificationWithViewedDto) {
	marker := color.New(color.FgGreen).Sprint("●")
	if n.IsViewed {
		marker = " "
	}
	if n.IsHidden {
		marker = color.New(color.FgHiBlack).Sprint("h")
	}
	fmt.Fprintf(out, "%s ", marker)
	PrintNotification(out, n.NotificationDto)
}
