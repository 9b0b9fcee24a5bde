// Package flow defines the node-and-edge graph shown on the editing canvas.
//
// A [Graph] is what the canvas renders and mutates: [Node] values with a
// stable ID, a [NodeKind], a display label, the index of the entry they came
// from, an opaque [Payload] and a [Position]; [Edge] values connecting them.
//
// # Node IDs
//
// IDs are "<prefix>-<index>" where the index is the entry's position in its
// source list: step-0, observer-1, trigger-0, exit-condition-0, pipeline-2.
// Re-converting an unedited definition yields the same IDs.
//
// # Payloads
//
// [Payload] is a sealed sum type with one variant per source collection
// ([StepPayload], [ObserverPayload], [TriggerPayload], [ExitConditionPayload],
// [StagePayload]) plus [RecordPayload] for kinds that have no definition
// section. On the wire every payload is a plain JSON object so renderers and
// property forms can treat it as opaque.
//
// # Wire Format
//
//	{
//	  "nodes": [{"id": "step-0", "kind": "step", "label": "init", "stepIndex": 0,
//	             "payload": {"name": "init"}, "position": {"x": 0, "y": 0}}],
//	  "edges": [{"id": "edge-implicit-step-0-step-1", "source": "step-0", "target": "step-1"}]
//	}
package flow
