package consts

const (
	ApplicationName    = "Applications Server"
	ApplicationVersion = "1.0.0"
)

// 审计日志中记录的端点名称，保持与历史数据一致，不要随意改动。
const (
	EndpointCreateApplication     = "create_application"
	EndpointGetApplicationByID    = "get_application_by_id"
	EndpointGetApplicationByTitle = "get_application_by_title"
	EndpointGetAllApplications    = "get_all_applications"
	EndpointDeleteApplication     = "delete_user_application"
	EndpointEditApplication       = "edit_application"
	EndpointUploadImage           = "upload_image"
	EndpointGetImage              = "get_image"
	EndpointDeleteImage           = "delete_image"
)
