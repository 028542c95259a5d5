package recipe

import (
	"encoding/json"
	"fmt"
)

// BuildOption is a single structured compiler option. Values are powers of
// two so that option sets export in a stable increasing order.
type BuildOption uint32

const (
	OptionDebugMode BuildOption = 1 << iota
	OptionReleaseMode
	OptionCoverage
	OptionDebugInfo
	OptionDebugInfoC
	OptionAlwaysStackFrame
	OptionStackStomping
	OptionInline
	OptionNoBoundsCheck
	OptionOptimize
	OptionProfile
	OptionUnittests
	OptionVerbose
	OptionIgnoreUnknownPragmas
	OptionSyntaxOnly
	OptionWarnings
	OptionWarningsAsErrors
	OptionIgnoreDeprecations
	OptionDeprecationWarnings
	OptionDeprecationErrors
	OptionProperty
	OptionProfileGC
	OptionBetterC
	OptionLowmem
	OptionCoverageCTFE
)

var buildOptionNames = map[BuildOption]string{
	OptionDebugMode:            "debugMode",
	OptionReleaseMode:          "releaseMode",
	OptionCoverage:             "coverage",
	OptionDebugInfo:            "debugInfo",
	OptionDebugInfoC:           "debugInfoC",
	OptionAlwaysStackFrame:     "alwaysStackFrame",
	OptionStackStomping:        "stackStomping",
	OptionInline:               "inline",
	OptionNoBoundsCheck:        "noBoundsCheck",
	OptionOptimize:             "optimize",
	OptionProfile:              "profile",
	OptionUnittests:            "unittests",
	OptionVerbose:              "verbose",
	OptionIgnoreUnknownPragmas: "ignoreUnknownPragmas",
	OptionSyntaxOnly:           "syntaxOnly",
	OptionWarnings:             "warnings",
	OptionWarningsAsErrors:     "warningsAsErrors",
	OptionIgnoreDeprecations:   "ignoreDeprecations",
	OptionDeprecationWarnings:  "deprecationWarnings",
	OptionDeprecationErrors:    "deprecationErrors",
	OptionProperty:             "property",
	OptionProfileGC:            "profileGC",
	OptionBetterC:              "betterC",
	OptionLowmem:               "lowmem",
	OptionCoverageCTFE:         "coverageCTFE",
}

func (o BuildOption) String() string {
	if name, ok := buildOptionNames[o]; ok {
		return name
	}
	return fmt.Sprintf("option(%d)", uint32(o))
}

// BuildOptions is a set of build options. The zero value is the empty set.
type BuildOptions struct {
	mask uint32
}

// NewBuildOptions builds a set from individual options.
func NewBuildOptions(opts ...BuildOption) BuildOptions {
	var s BuildOptions
	for _, o := range opts {
		s.Add(o)
	}
	return s
}

// Add inserts an option into the set.
func (s *BuildOptions) Add(o BuildOption) {
	s.mask |= uint32(o)
}

// Has reports whether the option is in the set.
func (s BuildOptions) Has(o BuildOption) bool {
	return s.mask&uint32(o) != 0
}

// Union merges another set into this one.
func (s *BuildOptions) Union(other BuildOptions) {
	s.mask |= other.mask
}

// IsEmpty reports whether no option is set.
func (s BuildOptions) IsEmpty() bool {
	return s.mask == 0
}

// Each visits the contained options in increasing bit order. Exported output
// relies on this order for reproducibility.
func (s BuildOptions) Each(fn func(BuildOption)) {
	for bit := uint32(1); bit != 0 && bit <= s.mask; bit <<= 1 {
		if s.mask&bit != 0 {
			fn(BuildOption(bit))
		}
	}
}

// Names returns the option names in increasing bit order.
func (s BuildOptions) Names() []string {
	var names []string
	s.Each(func(o BuildOption) {
		names = append(names, o.String())
	})
	return names
}

// MarshalJSON encodes the set as a sorted list of option names.
func (s BuildOptions) MarshalJSON() ([]byte, error) {
	names := s.Names()
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes a list of option names; unknown names are rejected.
func (s *BuildOptions) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = BuildOptions{}
	for _, name := range names {
		o, ok := buildOptionByName(name)
		if !ok {
			return fmt.Errorf("unknown build option %q", name)
		}
		s.Add(o)
	}
	return nil
}

func buildOptionByName(name string) (BuildOption, bool) {
	for o, n := range buildOptionNames {
		if n == name {
			return o, true
		}
	}
	return 0, false
}

// BuildRequirement is a single structured build requirement.
type BuildRequirement uint32

const (
	RequirementAllowWarnings BuildRequirement = 1 << iota
	RequirementSilenceWarnings
	RequirementDisallowDeprecations
	RequirementSilenceDeprecations
	RequirementDisallowInlining
	RequirementDisallowOptimization
	RequirementRequireBoundsCheck
	RequirementRequireContracts
	RequirementRelaxProperties
	RequirementNoDefaultFlags
)

var buildRequirementNames = map[BuildRequirement]string{
	RequirementAllowWarnings:        "allowWarnings",
	RequirementSilenceWarnings:      "silenceWarnings",
	RequirementDisallowDeprecations: "disallowDeprecations",
	RequirementSilenceDeprecations:  "silenceDeprecations",
	RequirementDisallowInlining:     "disallowInlining",
	RequirementDisallowOptimization: "disallowOptimization",
	RequirementRequireBoundsCheck:   "requireBoundsCheck",
	RequirementRequireContracts:     "requireContracts",
	RequirementRelaxProperties:      "relaxProperties",
	RequirementNoDefaultFlags:       "noDefaultFlags",
}

func (r BuildRequirement) String() string {
	if name, ok := buildRequirementNames[r]; ok {
		return name
	}
	return fmt.Sprintf("requirement(%d)", uint32(r))
}

// BuildRequirements is a set of build requirements. The zero value is the
// empty set.
type BuildRequirements struct {
	mask uint32
}

// NewBuildRequirements builds a set from individual requirements.
func NewBuildRequirements(reqs ...BuildRequirement) BuildRequirements {
	var s BuildRequirements
	for _, r := range reqs {
		s.Add(r)
	}
	return s
}

// Add inserts a requirement into the set.
func (s *BuildRequirements) Add(r BuildRequirement) {
	s.mask |= uint32(r)
}

// Has reports whether the requirement is in the set.
func (s BuildRequirements) Has(r BuildRequirement) bool {
	return s.mask&uint32(r) != 0
}

// Union merges another set into this one.
func (s *BuildRequirements) Union(other BuildRequirements) {
	s.mask |= other.mask
}

// IsEmpty reports whether no requirement is set.
func (s BuildRequirements) IsEmpty() bool {
	return s.mask == 0
}

// Each visits the contained requirements in increasing bit order.
func (s BuildRequirements) Each(fn func(BuildRequirement)) {
	for bit := uint32(1); bit != 0 && bit <= s.mask; bit <<= 1 {
		if s.mask&bit != 0 {
			fn(BuildRequirement(bit))
		}
	}
}

// Names returns the requirement names in increasing bit order.
func (s BuildRequirements) Names() []string {
	var names []string
	s.Each(func(r BuildRequirement) {
		names = append(names, r.String())
	})
	return names
}

// MarshalJSON encodes the set as a sorted list of requirement names.
func (s BuildRequirements) MarshalJSON() ([]byte, error) {
	names := s.Names()
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes a list of requirement names; unknown names are rejected.
func (s *BuildRequirements) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = BuildRequirements{}
	for _, name := range names {
		for r, n := range buildRequirementNames {
			if n == name {
				s.Add(r)
				name = ""
				break
			}
		}
		if name != "" {
			return fmt.Errorf("unknown build requirement %q", name)
		}
	}
	return nil
}
