package pack

import (
	"github.com/glorpus-work/mason/pkg/logger"
	"github.com/sirupsen/logrus"
)

// lint runs the non-fatal structural checks over the effective recipe. All
// findings are warnings; none of them block resolution.
func (p *Package) lint() {
	if p.recipe.Name == "" {
		logger.Warn("package recipe has no name", logrus.Fields{"path": p.dir})
	}

	seen := make(map[string]struct{}, len(p.recipe.Configurations))
	for _, config := range p.recipe.Configurations {
		if _, dup := seen[config.Name]; dup {
			logger.Warn("duplicate configuration name, only the first declaration is reachable",
				logrus.Fields{"package": p.recipe.Name, "configuration": config.Name})
			continue
		}
		seen[config.Name] = struct{}{}
	}

	if p.parent != nil && p.dir != "" && p.dir != p.parent.dir {
		if p.recipe.License != "" && p.parent.recipe.License != "" &&
			p.recipe.License != p.parent.recipe.License {
			logger.Warn("sub-package license differs from parent package",
				logrus.Fields{
					"package":        p.QualifiedName(),
					"license":        p.recipe.License,
					"parent_license": p.parent.recipe.License,
				})
		}
	}
}
