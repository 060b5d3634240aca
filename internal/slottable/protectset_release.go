//go:build mdcache_noprotectdebug

// This file compiles the protect-set down to a count-only stub. The
// pinning contract remains in force — the cache still refuses to displace
// a slot that a caller believes is protected — but with this tag set the
// cache trusts the caller's protect/unprotect pairing instead of recording
// who holds each pin, trading a debugging aid for one fewer slice per slot.
//
// © 2025 mdcache authors. MIT License.
package slottable

import (
	"github.com/voskan/mdcache/internal/addr"
	"github.com/voskan/mdcache/internal/entrykind"
)

type protectSet[C any] struct {
	n int
}

func (p *protectSet[C]) len() int { return p.n }

func (p *protectSet[C]) append(ProtectRecord[C]) { p.n++ }

func (p *protectSet[C]) remove(*entrykind.Descriptor[C], addr.Addr, any) bool {
	if p.n == 0 {
		return false
	}
	p.n--
	return true
}

func (p *protectSet[C]) takeAll(addr.Addr) (n int, moved []ProtectRecord[C]) {
	n = p.n
	p.n = 0
	return n, nil
}

func (p *protectSet[C]) adopt(n int, _ []ProtectRecord[C]) {
	p.n += n
}

func (p *protectSet[C]) snapshot() []ProtectRecord[C] { return nil }
