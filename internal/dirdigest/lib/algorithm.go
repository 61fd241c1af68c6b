// Package lib contains the core, reusable services for the dirdigest application.
package lib

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"strings"
)

// Algorithm selects which hash function backs a DigestAlgorithm.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	SHA512 Algorithm = "sha512"
	MD5    Algorithm = "md5"
)

// DefaultAlgorithm is used when the caller does not pick one.
const DefaultAlgorithm = SHA256

// ErrUnknownAlgorithm is returned for any selector outside the supported set.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithms returns every supported algorithm in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, SHA512, MD5}
}

// ParseAlgorithm converts a user-supplied name into an Algorithm.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Algorithms() {
		if alg == known {
			return alg, nil
		}
	}
	return "", fmt.Errorf("%w %q (expected one of %s)", ErrUnknownAlgorithm, name, algorithmList())
}

func (a Algorithm) String() string {
	return string(a)
}

// DigestAlgorithm is an incremental hash over a stream of bytes.
//
// Update may be called any number of times with any chunk sizes; the result of
// Finalize only depends on the concatenation of everything fed so far.
// Finalize does not reset or consume the accumulator.
type DigestAlgorithm interface {
	Update(data []byte)
	Finalize() string
	Algorithm() Algorithm
}

// NewDigest returns a fresh accumulator for the selected algorithm.
func NewDigest(alg Algorithm) (DigestAlgorithm, error) {
	switch alg {
	case SHA256:
		return &sha256Digest{h: sha256.New()}, nil
	case SHA512:
		return &sha512Digest{h: sha512.New()}, nil
	case MD5:
		return &md5Digest{h: md5.New()}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownAlgorithm, string(alg))
	}
}

// DigestBytes hashes an in-memory byte slice in one call and returns the
// lowercase hex digest.
func DigestBytes(alg Algorithm, content []byte) (string, error) {
	d, err := NewDigest(alg)
	if err != nil {
		return "", err
	}
	d.Update(content)
	return d.Finalize(), nil
}

type sha256Digest struct {
	h hash.Hash
}

func (d *sha256Digest) Update(data []byte) { d.h.Write(data) }
func (d *sha256Digest) Finalize() string   { return hex.EncodeToString(d.h.Sum(nil)) }
func (d *sha256Digest) Algorithm() Algorithm {
	return SHA256
}

type sha512Digest struct {
	h hash.Hash
}

func (d *sha512Digest) Update(data []byte) { d.h.Write(data) }
func (d *sha512Digest) Finalize() string   { return hex.EncodeToString(d.h.Sum(nil)) }
func (d *sha512Digest) Algorithm() Algorithm {
	return SHA512
}

type md5Digest struct {
	h hash.Hash
}

func (d *md5Digest) Update(data []byte) { d.h.Write(data) }
func (d *md5Digest) Finalize() string   { return hex.EncodeToString(d.h.Sum(nil)) }
func (d *md5Digest) Algorithm() Algorithm {
	return MD5
}

func algorithmList() string {
	names := make([]string, 0, len(Algorithms()))
	for _, a := range Algorithms() {
		names = append(names, string(a))
	}
	return strings.Join(names, "|")
}
