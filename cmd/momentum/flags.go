package main

import (
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/momentum/internal/report"
	"github.com/at-ishikawa/momentum/internal/tracker"
)

type SkillFlag tracker.Skill

// Set implements pflag.Value.
func (s *SkillFlag) Set(v string) error {
	skill, err := tracker.ParseSkill(v)
	if err != nil {
		return err
	}
	*s = SkillFlag(skill)
	return nil
}

// String implements pflag.Value.
func (s *SkillFlag) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *SkillFlag) Type() string {
	return "Skill"
}

type FormatFlag report.Format

// Set implements pflag.Value.
func (f *FormatFlag) Set(v string) error {
	format, err := report.ParseFormat(v)
	if err != nil {
		return err
	}
	*f = FormatFlag(format)
	return nil
}

// String implements pflag.Value.
func (f *FormatFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *FormatFlag) Type() string {
	return "Format"
}

var (
	_ pflag.Value = (*SkillFlag)(nil)
	_ pflag.Value = (*FormatFlag)(nil)
)
