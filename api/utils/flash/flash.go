// Package flash carries one-shot user messages across a redirect in a
// cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	cookieName = "flash"
	pendingKey = "flash.pending"
)

type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Add queues a message. It is shown by the next Pop, either later in this
// request or on the page the client is redirected to.
func Add(c *gin.Context, level Level, text string) {
	messages := append(load(c), Message{Level: level, Text: text})
	c.Set(pendingKey, messages)
	writeCookie(c, messages)
}

// Pop returns every queued message and clears the cookie.
func Pop(c *gin.Context) []Message {
	messages := load(c)
	c.Set(pendingKey, []Message{})
	if len(messages) > 0 {
		clearCookie(c)
	}
	return messages
}

// load returns the messages queued so far, seeded from the request cookie
// on first use.
func load(c *gin.Context) []Message {
	if val, ok := c.Get(pendingKey); ok {
		messages, _ := val.([]Message)
		return messages
	}
	messages := readCookie(c)
	c.Set(pendingKey, messages)
	return messages
}

func readCookie(c *gin.Context) []Message {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil
	}
	return messages
}

func writeCookie(c *gin.Context, messages []Message) {
	data, err := json.Marshal(messages)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, base64.RawURLEncoding.EncodeToString(data), 0, "/", "", false, true)
}

func clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
}
