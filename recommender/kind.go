package recommender

import (
	"fmt"
	"strings"

	"github.com/viant/reco/index"
	"github.com/viant/reco/index/bruteforce"
	"github.com/viant/reco/index/cover"
	"github.com/viant/reco/index/kdtree"
)

// Kind names an index implementation.
type Kind string

const (
	KindAuto   Kind = "auto"
	KindKDTree Kind = "kdtree"
	KindCover  Kind = "cover"
	KindBrute  Kind = "brute"
)

const (
	autoCoverMinPoints = 4000
	autoCoverMinDim    = 64
)

// ParseKind accepts auto, kdtree, cover or brute.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindAuto, nil
	case KindAuto, KindKDTree, KindCover, KindBrute:
		return k, nil
	default:
		return "", fmt.Errorf("recommender: unknown index kind %q", s)
	}
}

// resolve picks a concrete kind. High-dimensional data defeats kd-tree
// pruning, so large wide datasets go to the cover tree.
func (k Kind) resolve(points, dim int) Kind {
	switch k {
	case KindKDTree, KindCover, KindBrute:
		return k
	}
	if points >= autoCoverMinPoints && dim >= autoCoverMinDim {
		return KindCover
	}
	return KindKDTree
}

func newIndex(kind Kind) index.Index {
	switch kind {
	case KindCover:
		return cover.New()
	case KindBrute:
		return bruteforce.New()
	default:
		return kdtree.New()
	}
}
