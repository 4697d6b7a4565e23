package stream

import (
	"strconv"

	"github.com/aws/aws-lambda-go/events"
)

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok {
		if v.DataType() == events.DataTypeString {
			return v.String()
		}
	}
	return ""
}

// getNumberAttr extracts a number attribute from a DynamoDB stream image.
func getNumberAttr(image map[string]events.DynamoDBAttributeValue, key string) int64 {
	if v, ok := image[key]; ok {
		if v.DataType() == events.DataTypeNumber {
			n, _ := strconv.ParseInt(v.Number(), 10, 64)
			return n
		}
	}
	return 0
}

// getNumberListAttr extracts a list of numbers from a DynamoDB stream image.
// Non-numeric list members are read as 0 so that positions are preserved.
func getNumberListAttr(image map[string]events.DynamoDBAttributeValue, key string) []int {
	if v, ok := image[key]; ok {
		if v.DataType() == events.DataTypeList {
			list := v.List()
			result := make([]int, len(list))
			for i, item := range list {
				if item.DataType() == events.DataTypeNumber {
					n, _ := strconv.Atoi(item.Number())
					result[i] = n
				}
			}
			return result
		}
	}
	return nil
}
