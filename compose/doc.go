// Package compose renders the layers a frame leaves to the client.
//
// Layers the planner or importer rejected are decoded from their mapped
// buffers and blended, scaled from SourceCrop into DisplayFrame, onto a
// CPU Target. The result is handed to whatever scans out the client
// layer, or uploaded as a texture by a GPU device provider.
package compose
