package settings

import "github.com/m04kA/SMC-SalonBooking/pkg/txmanager"

type DBExecutor = txmanager.DBExecutor
