//go:generate mockgen -source=../store.go            -destination=./mock_store.go            -package=mocks
//go:generate mockgen -source=../validator.go        -destination=./mock_validator.go        -package=mocks
//go:generate mockgen -source=../logger.go           -destination=./mock_logger.go           -package=mocks
//go:generate mockgen -source=../message_consumer.go -destination=./mock_message_consumer.go -package=mocks
//go:generate mockgen -source=../tool_service.go     -destination=./mock_tool_service.go     -package=mocks

package mocks
