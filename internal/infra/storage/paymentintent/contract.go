package paymentintent

import "github.com/vgcman16/CleanMate/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
