package engine

import "github.com/skillsenselab/cortex/logger"

// resolveInputs gathers the values produced by a node's upstream neighbors,
// keyed by declared input handle (falling back to the source id).
//
// Fail-soft propagation: a failed upstream still binds its handle, to nil,
// so the downstream node is attempted and decides for itself how to treat
// the missing payload. An upstream with no recorded result leaves the handle
// unbound; the scheduler's ordering guarantee makes that unreachable, so it
// is logged as an invariant violation rather than handled.
func resolveInputs(nodeID string, edges []Edge, store *Store, log *logger.Logger) map[string]any {
	inputs := make(map[string]any)

	for _, edge := range edges {
		if edge.Target != nodeID {
			continue
		}

		key := edge.TargetHandle
		if key == "" {
			key = edge.Source
		}

		upstream, recorded := store.Get(edge.Source)
		switch {
		case recorded && upstream.Success:
			inputs[key] = upstream.Value
		case recorded:
			log.Warn("upstream node failed, propagating nil input", map[string]interface{}{
				"source": edge.Source,
				"target": nodeID,
				"handle": key,
			})
			inputs[key] = nil
		default:
			log.Warn("upstream result missing before dependent ran", map[string]interface{}{
				"source": edge.Source,
				"target": nodeID,
			})
		}
	}

	return inputs
}
