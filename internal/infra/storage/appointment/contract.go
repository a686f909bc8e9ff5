package appointment

import "github.com/m04kA/SMC-SalonBooking/pkg/txmanager"

// DBExecutor работает и с *sql.DB, и с *sql.Tx из контекста
type DBExecutor = txmanager.DBExecutor
