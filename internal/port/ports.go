// Package port defines the interfaces (ports) between the service layer and
// its infrastructure. The dataset reader is the only dependency the
// analytical services have, which lets tests substitute fixture tables
// without a load step.
package port

import "github.com/mlefebvre/banking-txn-api/internal/infra/dataset"

// DatasetReader is the read-only handle to the shared transaction table.
// Implementations must never return nil: an unloaded dataset reads as the
// empty table.
type DatasetReader interface {
	Table() *dataset.Table
}
