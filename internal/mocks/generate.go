package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Sink --dir ../domain/warehouse --output domain/warehouse --outpkg warehousemock --filename sink_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Allocator --dir ../domain/surrogate --output domain/surrogate --outpkg surrogatemock --filename allocator_mock.go
