// Package sprite is the public API of animforge: an in-process pipeline
// that turns an ordered set of still images into a single portable
// animated-sprite archive.
//
// A [Session] owns the frame registry, the preview player, and the
// archive encoder for one editing session. Frames are ingested in
// batches, kept in natural name order, previewed through the player, and
// exported as a compressed archive containing a JSON manifest plus one
// raster file per frame.
//
//	session, err := sprite.New(sprite.Config{FPS: 24, Loop: true})
//	if err != nil { ... }
//	err = session.Ingest(ctx, []sprite.File{{Name: "frame1.png", Content: data}})
//	result, err := session.Export(ctx)
package sprite
