// Package services holds the error taxonomy and context plumbing shared by
// the remote-service clients and the pipeline components that call them.
package services
