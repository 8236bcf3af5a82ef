// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package trust

import (
	"context"
)

// PathResolver computes bounded social distance between two users using
// breadth-first search over the "following" relation, limited to depth 2.
//
// Cost is O(depth1_fanout + depth2_fanout) per traversal; the resolver
// never walks the full graph. A visited set guarantees termination on
// cyclic graphs (mutual follows are legal) and minimum-distance
// semantics: a node discovered at depth 1 is never revisited at depth 2.
type PathResolver struct {
	graph SocialGraph
}

// NewPathResolver creates a resolver over the given social graph.
func NewPathResolver(graph SocialGraph) *PathResolver {
	return &PathResolver{graph: graph}
}

// Distance returns the social distance from viewer to target:
// DistanceDirect, DistanceFriendOfFriend, or DistanceNone for targets
// beyond two hops, unreachable, or the viewer themselves.
func (r *PathResolver) Distance(ctx context.Context, viewerID, targetID string) (Distance, error) {
	distances, err := r.Distances(ctx, viewerID, []string{targetID})
	if err != nil {
		return DistanceNone, err
	}
	return distances[targetID], nil
}

// Distances performs a single bounded BFS from the viewer and returns
// the distance for every requested target. Targets not present in the
// returned map were not requested; every requested target is present,
// mapped to DistanceNone when unreachable.
//
// The traversal is one pass regardless of target count, so scoring a
// content item costs one BFS no matter how many endorsers it has.
func (r *PathResolver) Distances(ctx context.Context, viewerID string, targetIDs []string) (map[string]Distance, error) {
	result := make(map[string]Distance, len(targetIDs))
	for _, t := range targetIDs {
		result[t] = DistanceNone
	}
	if len(targetIDs) == 0 {
		return result, nil
	}

	depth1, err := r.graph.ListFollowing(ctx, viewerID)
	if err != nil {
		return nil, wrapCollaborator("social-graph", viewerID, err)
	}

	// visited holds every node already assigned its minimum distance.
	// Seeding it with the viewer enforces both cycle termination and the
	// rule that a user is never their own endorser.
	visited := make(map[string]struct{}, len(depth1)+1)
	visited[viewerID] = struct{}{}

	remaining := len(result)
	for _, id := range depth1 {
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}
		if d, wanted := result[id]; wanted && d == DistanceNone {
			result[id] = DistanceDirect
			remaining--
		}
	}
	if remaining == 0 {
		return result, nil
	}

	for _, mid := range depth1 {
		if mid == viewerID {
			continue
		}
		depth2, err := r.graph.ListFollowing(ctx, mid)
		if err != nil {
			return nil, wrapCollaborator("social-graph", mid, err)
		}
		for _, id := range depth2 {
			// Ties resolve to the minimum depth: anything already
			// visited keeps its shorter distance.
			if _, seen := visited[id]; seen {
				continue
			}
			visited[id] = struct{}{}
			if d, wanted := result[id]; wanted && d == DistanceNone {
				result[id] = DistanceFriendOfFriend
				remaining--
				if remaining == 0 {
					return result, nil
				}
			}
		}
	}

	return result, nil
}
