// Package classifier inspects an attachment's tag mapping and reports which
// documentation blocks it carries. It is pure: no I/O, no mutation.
package classifier

const (
	categoryDesign     = "Design"
	categoryExperiment = "Experiment"

	labelDesignFile  = "Design File"
	labelStrandInfo  = "Strand Information"
	labelIntro       = "Introduction"
	labelDescription = "Description"
)

// Signals is the per-attachment classification result. DesignBlocks is a
// count (0 or 1 per file) so it can be summed across a project's files;
// the booleans OR-fold across files.
type Signals struct {
	HasDesignFile        bool
	HasStrandInfo        bool
	DesignBlocks         int
	HasIntroductionBlock bool
	HasDescriptionBlock  bool
	HasExperimentBlock   bool
}

// Classify reads one attachment's tag mapping. A nil or malformed mapping
// classifies as no signals, never as an error.
func Classify(tags map[string][]string) Signals {
	var s Signals
	if tags == nil {
		return s
	}

	if design, ok := tags[categoryDesign]; ok && len(design) > 0 {
		s.DesignBlocks = 1
		for _, label := range design {
			switch label {
			case labelDesignFile:
				s.HasDesignFile = true
			case labelStrandInfo:
				s.HasStrandInfo = true
			case labelIntro:
				s.HasIntroductionBlock = true
			case labelDescription:
				s.HasDescriptionBlock = true
			}
		}
	}

	if experiment, ok := tags[categoryExperiment]; ok && len(experiment) > 0 {
		s.HasExperimentBlock = true
	}

	return s
}

// Fold reduces per-file signals into project-level signals: booleans OR,
// block counts sum. A signal is true for the project if any one file set it.
func Fold(all []Signals) Signals {
	var out Signals
	for _, s := range all {
		out.HasDesignFile = out.HasDesignFile || s.HasDesignFile
		out.HasStrandInfo = out.HasStrandInfo || s.HasStrandInfo
		out.HasIntroductionBlock = out.HasIntroductionBlock || s.HasIntroductionBlock
		out.HasDescriptionBlock = out.HasDescriptionBlock || s.HasDescriptionBlock
		out.HasExperimentBlock = out.HasExperimentBlock || s.HasExperimentBlock
		out.DesignBlocks += s.DesignBlocks
	}
	return out
}
