package shop

// @Strunemix(output=`fields_gen`)
type Tag struct {
	Value string
}
