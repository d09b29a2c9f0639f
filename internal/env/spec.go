// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package env

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// idPattern matches "[namespace/]name[-vN]".
var idPattern = regexp.MustCompile(`^(?:([\w:-]+)/)?([\w:.-]+?)(?:-v(\d+))?$`)

// ID is a parsed environment id.
type ID struct {
	Namespace string
	Name      string
	// Version is -1 when the id is unversioned.
	Version int
}

// ParseID splits an environment id such as "ALE/Pong-v5" into its parts.
func ParseID(id string) (ID, error) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return ID{}, fmt.Errorf("malformed environment id %q: expected [namespace/]name[-vN]", id)
	}
	out := ID{Namespace: m[1], Name: m[2], Version: -1}
	if m[3] != "" {
		v, err := strconv.Atoi(m[3])
		if err != nil {
			return ID{}, fmt.Errorf("malformed version in environment id %q: %w", id, err)
		}
		out.Version = v
	}
	return out, nil
}

// String renders the id back into its canonical form.
func (i ID) String() string {
	var b strings.Builder
	if i.Namespace != "" {
		b.WriteString(i.Namespace)
		b.WriteByte('/')
	}
	b.WriteString(i.Name)
	if i.Version >= 0 {
		fmt.Fprintf(&b, "-v%d", i.Version)
	}
	return b.String()
}

// Spec is the registration record of an environment.
type Spec struct {
	ID string
	// EntryPoint names the registered factory, "package.path:Constructor".
	EntryPoint string
	Kwargs     Kwargs

	// MaxEpisodeSteps enables the time-limit wrapper when positive.
	MaxEpisodeSteps  int
	RewardThreshold  *float64
	Nondeterministic bool
	// OrderEnforce enables the wrapper that rejects Step before Reset.
	OrderEnforce      bool
	DisableEnvChecker bool

	// Source is the manifest file the spec was loaded from, if any.
	Source string
}

// Validate checks the fields that every spec must carry.
func (s *Spec) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("environment spec has an empty id")
	}
	if _, err := ParseID(s.ID); err != nil {
		return err
	}
	if s.EntryPoint == "" {
		return fmt.Errorf("environment %q has no entry point", s.ID)
	}
	if s.MaxEpisodeSteps < 0 {
		return fmt.Errorf("environment %q has negative max_episode_steps %d", s.ID, s.MaxEpisodeSteps)
	}
	return nil
}

// ParsedID returns the parsed form of s.ID. Specs are validated on
// registration, so a parse failure yields the zero ID.
func (s *Spec) ParsedID() ID {
	id, _ := ParseID(s.ID)
	return id
}

// Module returns the package part of the entry point, before the colon.
func (s *Spec) Module() string {
	mod, _, _ := strings.Cut(s.EntryPoint, ":")
	return mod
}

// Copy returns a deep copy of the spec, so that callers can override kwargs
// without touching the registered record.
func (s *Spec) Copy() *Spec {
	c := *s
	c.Kwargs = s.Kwargs.Clone()
	if s.RewardThreshold != nil {
		v := *s.RewardThreshold
		c.RewardThreshold = &v
	}
	return &c
}

func (s *Spec) String() string {
	return fmt.Sprintf("EnvSpec(id=%s, entry_point=%s)", s.ID, s.EntryPoint)
}
