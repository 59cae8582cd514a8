package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
)

const (
	msgRateLimited = "слишком много запросов, попробуйте позже"

	minIdleTTL = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP.
// X-Forwarded-For учитывается только от доверенных прокси
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	trusted []*net.IPNet
	now     func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// NewRateLimiter создает ограничитель: requestsPerMinute в минуту с запасом burst
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	if burst < 1 {
		burst = 1
	}

	// Неактивный ограничитель удаляется не раньше, чем полностью восстановит запас
	idleTTL := time.Duration(burst) * time.Minute / time.Duration(requestsPerMinute)
	if idleTTL < minIdleTTL {
		idleTTL = minIdleTTL
	}

	return &RateLimiter{
		limit:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
		idleTTL:  idleTTL,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

// WithTrustedProxies задает адреса прокси (IP или CIDR), которым разрешено
// передавать адрес клиента в X-Forwarded-For
func (l *RateLimiter) WithTrustedProxies(proxies []string) (*RateLimiter, error) {
	nets, err := parseTrustedProxies(proxies)
	if err != nil {
		return nil, err
	}
	l.trusted = nets
	return l, nil
}

// parseTrustedProxies разбирает список IP и CIDR
func parseTrustedProxies(proxies []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(proxies))
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", p)
			}
			bits := 8 * net.IPv6len
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 8 * net.IPv4len
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(p)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %v", p, err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}

func (l *RateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) >= l.idleTTL {
				delete(l.visitors, key)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Middleware отвечает 429, когда лимит IP исчерпан
func (l *RateLimiter) Middleware(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := l.clientIP(r)
			if !l.limiter(ip).Allow() {
				logger.Warn("RateLimit: limit exceeded ip=%s path=%s", ip, r.URL.Path)
				handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP адрес соединения. За доверенным прокси берется самый правый
// адрес X-Forwarded-For, который не принадлежит доверенным прокси
func (l *RateLimiter) clientIP(r *http.Request) string {
	host := remoteHost(r)
	if !l.isTrusted(host) {
		return host
	}

	fwd := r.Header.Get("X-Forwarded-For")
	if fwd == "" {
		return host
	}
	hops := strings.Split(fwd, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if net.ParseIP(hop) == nil {
			break
		}
		if !l.isTrusted(hop) {
			return hop
		}
	}
	return host
}

func (l *RateLimiter) isTrusted(host string) bool {
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, n := range l.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// remoteHost адрес соединения без порта
func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
