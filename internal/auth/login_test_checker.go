package auth

import (
	"context"
	"sync"
)

// LoginTestChecker is an in-memory login checker for handler tests.
type LoginTestChecker struct {
	mutex  sync.RWMutex
	tokens map[string]bool
}

func NewLoginTestChecker(tokens ...string) *LoginTestChecker {
	c := &LoginTestChecker{tokens: map[string]bool{}}
	c.Add(tokens...)
	return c
}

func (c *LoginTestChecker) Add(tokens ...string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for _, token := range tokens {
		c.tokens[token] = true
	}
}

func (c *LoginTestChecker) Remove(token string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.tokens, token)
}

func (c *LoginTestChecker) IsLogged(_ context.Context, token string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.tokens[token], nil
}
