package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/Mandalorian7773/Collabie/internal/utils/types"
)

type deviceInfoKey string

const DeviceInfoKey deviceInfoKey = "deviceInfo"

// WithDeviceInfo captures the request's device metadata so login and refresh
// can persist it alongside the session.
func WithDeviceInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := types.DeviceInfo{
			UserAgent: r.UserAgent(),
			IP:        clientIP(r),
			Device:    deviceFromUserAgent(r.UserAgent()),
		}

		ctx := context.WithValue(r.Context(), DeviceInfoKey, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func DeviceInfoFromContext(ctx context.Context) types.DeviceInfo {
	info, ok := ctx.Value(DeviceInfoKey).(types.DeviceInfo)
	if !ok {
		return types.DeviceInfo{Device: "unknown"}
	}
	return info
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func deviceFromUserAgent(ua string) string {
	ua = strings.ToLower(ua)
	switch {
	case strings.Contains(ua, "android"), strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"):
		return "mobile"
	case ua == "":
		return "unknown"
	default:
		return "desktop"
	}
}
