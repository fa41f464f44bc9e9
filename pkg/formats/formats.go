// Package formats writes generated meshes to interchange file formats.
package formats

// Note: OBJ export is implemented in obj.go
// Note: binary STL export goes through sdfx in stl.go
