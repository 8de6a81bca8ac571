package middleware

import (
	"fmt"
	"log"
	"marche/redis"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Fixed window counter. INCR and EXPIRE must run atomically or a crashed
// client can leave a counter without a TTL.
const fixedWindowScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

local current = redis.call("INCR", key)
if current == 1 then
	redis.call("PEXPIRE", key, window)
end
if current > limit then
	return 0
end
return 1
`

// RateLimit allows at most limit requests per window per client IP and
// route. With redis unavailable the limiter allows everything.
func RateLimit(name string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if redis.Client == nil {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", name, c.IP())
		res, err := redis.Client.Eval(c.Context(), fixedWindowScript,
			[]string{key}, limit, window.Milliseconds()).Int()
		if err != nil {
			log.Printf("[RATE-LIMIT] redis error: %v", err)
			return c.Next()
		}

		if res == 0 {
			return JsonResponse(c, fiber.StatusTooManyRequests, false, "Too many requests. Slow down!", nil)
		}
		return c.Next()
	}
}
