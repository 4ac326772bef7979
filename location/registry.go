package location

// PositionRegistry provides byte-offset-to-position conversion.
//
// This interface is the bridge between diagnostic producers (the scan,
// imports, and pattern packages) and the source content registry that backs
// them. It enables a diagnostic to be raised with only a byte offset in hand
// and have it resolved to a human-facing line/column later, at render time.
//
// The primary implementation is internal/source.Registry.
//
// Design rationale:
//
//  1. Foundation tier placement: PositionRegistry is defined in location
//     (foundation tier) because the interface operates on location.Position and
//     location.SourceID — natural cohesion with the location package.
//
//  2. Decouples producers from storage: diagnostic producers can use any
//     PositionRegistry implementation, not just internal/source.Registry. This
//     enables testing with mock registries.
//
//  3. tree-sitter reports node positions as byte offsets (Node.StartByte /
//     EndByte) natively; PositionRegistry exists to turn those into the
//     line/column pairs a human-facing diagnostic needs, not to bridge two
//     different offset coordinate systems.
type PositionRegistry interface {
	// PositionAt converts a byte offset to a Position for the given source.
	//
	// Returns a zero Position (check via IsZero()) if:
	//   - The source is not registered
	//   - The byte offset is out of range
	//   - The byte offset is negative
	//
	// The returned Position has:
	//   - Line: 1-based line number
	//   - Column: 1-based byte offset from line start
	//   - Byte: The input byteOffset (echoed back for convenience)
	PositionAt(source SourceID, byteOffset int) Position
}
