package monitor

import (
	"crypto/subtle"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultTailBytes = 256 << 10

// RegisterMonitorPage serves a small status page that polls the health endpoint.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>Conference Portal Monitor</title>
  <style>
    body { background: #0f0f0f; color: #e0e0e0; font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; padding: 20px; }
    .status-card { border: 1px solid rgba(255, 255, 255, 0.1); border-radius: 16px; padding: 1.5rem; max-width: 640px; }
    .ok { color: #22c55e; } .down { color: #ef4444; }
  </style>
</head>
<body>
  <div class="status-card">
    <h1>Conference Portal API</h1>
    <p>Status: <span id="status">checking...</span></p>
    <p>Last check: <span id="checked">-</span></p>
  </div>
  <script>
    async function check() {
      const el = document.getElementById('status');
      try {
        const res = await fetch('/api/v1/health');
        const body = await res.json();
        el.textContent = body.status;
        el.className = res.ok ? 'ok' : 'down';
      } catch (e) {
        el.textContent = 'unreachable';
        el.className = 'down';
      }
      document.getElementById('checked').textContent = new Date().toLocaleTimeString();
    }
    check();
    setInterval(check, 10000);
  </script>
</body>
</html>`))
	})
}

// RegisterLogsRoute serves the tail of the log file to callers holding token. An empty token
// disables the route.
func RegisterLogsRoute(router *gin.Engine, token string, logPath func() string) {
	router.GET("/logs", func(c *gin.Context) {
		if token == "" || subtle.ConstantTimeCompare([]byte(c.Query("token")), []byte(token)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		limit := int64(defaultTailBytes)
		if raw := c.Query("bytes"); raw != "" {
			if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
				limit = n
			}
		}

		logData, err := tail(logPath(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read log"})
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", logData)
	})
}

func tail(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	offset := info.Size() - limit
	if offset < 0 {
		offset = 0
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(f)
}
