package proxyrule

import "fmt"

func toString(v interface{}) string {
	return fmt.Sprint(v)
}
