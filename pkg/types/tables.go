package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "rh_"

const (
	TABLE_RESOURCE  = TableName("resource")
	TABLE_STAR_DATA = TableName("star_data")
)
