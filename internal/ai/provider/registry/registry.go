package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/types"
)

var (
	// ErrNoProvider 未注册任何可用 Provider
	ErrNoProvider = errors.New("no provider registered")
	// ErrProviderNotFound 名称或别名未注册
	ErrProviderNotFound = errors.New("provider not found")
)

// Registry Provider 注册表（支持别名和默认 Provider）
type Registry struct {
	mu          sync.RWMutex
	providers   map[string]types.Provider
	aliases     map[string]string // alias -> real name
	defaultName string
}

// New 创建空注册表
func New() *Registry {
	return &Registry{
		providers: make(map[string]types.Provider),
		aliases:   make(map[string]string),
	}
}

// Register 注册 Provider，第一个注册的 Provider 成为默认
func (r *Registry) Register(name string, provider types.Provider, aliasNames ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[name] = provider
	for _, alias := range aliasNames {
		r.aliases[alias] = name
	}
	if r.defaultName == "" {
		r.defaultName = name
	}
}

// SetDefault 设置默认 Provider
func (r *Registry) SetDefault(nameOrAlias string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	realName := r.resolveLocked(nameOrAlias)
	if _, ok := r.providers[realName]; !ok {
		return fmt.Errorf("%w: %s", ErrProviderNotFound, nameOrAlias)
	}
	r.defaultName = realName
	return nil
}

// Default 返回默认 Provider，注册表为空时返回 ErrNoProvider
func (r *Registry) Default() (types.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.providers[r.defaultName]
	if !ok {
		return nil, ErrNoProvider
	}
	return provider, nil
}

// Get 获取 Provider（支持别名）
func (r *Registry) Get(nameOrAlias string) (types.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.providers[r.resolveLocked(nameOrAlias)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, nameOrAlias)
	}
	return provider, nil
}

// ResolveAlias 解析别名为真实名称
func (r *Registry) ResolveAlias(nameOrAlias string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveLocked(nameOrAlias)
}

func (r *Registry) resolveLocked(nameOrAlias string) string {
	if realName, ok := r.aliases[nameOrAlias]; ok {
		return realName
	}
	return nameOrAlias
}

// IsAlias 检查是否为别名
func (r *Registry) IsAlias(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.aliases[name]
	return ok
}

// List 列出所有 Provider 名称（不包括别名），按名称排序
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unregister 注销 Provider（同时删除别名）
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.providers, name)
	for alias, realName := range r.aliases {
		if realName == name {
			delete(r.aliases, alias)
		}
	}
	if r.defaultName == name {
		r.defaultName = ""
	}
}

// Close 关闭所有 Provider 并清空注册表
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, provider := range r.providers {
		if err := provider.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.providers = make(map[string]types.Provider)
	r.aliases = make(map[string]string)
	r.defaultName = ""
	return errors.Join(errs...)
}
